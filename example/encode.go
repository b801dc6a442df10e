package main

import (
	"os"

	"github.com/WJQSERVER/cripple"
)

const source = `
main {
    var greeting = "hello, world";
    if (greeting equals "hello, world") {
        print greeting;
    }
}
`

func main() {
	forest, err := cripple.ParseSource([]byte(source))
	if err != nil {
		// 错误已经由默认的 hook 打印
		os.Exit(1)
	}

	// 创建打开文件
	f, err := os.Create("example.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	// 树形输出到标准输出, JSON 写入文件
	err = cripple.NewEncoder(os.Stdout).Encode(forest)
	if err != nil {
		panic(err)
	}
	err = cripple.NewEncoder(f, cripple.WithFormat(cripple.FormatJSON), cripple.WithPositions()).Encode(forest)
	if err != nil {
		panic(err)
	}

}

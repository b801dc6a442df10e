package cripple

import "unsafe"

// StringToBytes 将字符串转换为字节切片, 不进行内存分配.
// 更多详情, 请参见 https://github.com/golang/go/issues/53003#issuecomment-1140276077.
// 返回的 []byte 切片绝不能被修改; Tokenize 只读取它.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

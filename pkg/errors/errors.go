package errors

import "errors"

// ErrNoRowsAffected 按主键更新/删除时未命中任何记录
// Repository 返回该错误，由 Service 层翻译为各模块的"不存在"错误
var ErrNoRowsAffected = errors.New("未找到要操作的记录")

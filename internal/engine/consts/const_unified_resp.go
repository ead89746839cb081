package consts

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/28 17:56
 * @file: const_unified_resp.go
 * @description: 统一响应常量
 */

const (
	// DETAIL 用于设置响应数据，例如查询，分页等
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION 用于新增，修改，删除等只返回操作结果的接口
	// e.g: c.Locals(OPERATION, "")
	OPERATION = "operation"
)

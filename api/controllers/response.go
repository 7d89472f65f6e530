/*
 * @module api/controllers/response
 * @description 统一API响应结构与构造函数
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow 无状态工具函数
 * @rules Status为0表示成功,非0为HTTP语义错误码
 * @dependencies 无
 * @refs api/controllers/*.go
 */

package controllers

// APIResponse 统一API响应结构
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data,omitempty"`
}

// PaginatedResponse 分页响应结构
type PaginatedResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"操作成功"`
	Data   interface{} `json:"data"`
	Total  int64       `json:"total" example:"100"`
	Page   int         `json:"page" example:"1"`
	Size   int         `json:"size" example:"10"`
}

// SuccessResponse 成功响应
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// BadRequestResponse 请求参数错误响应
func BadRequestResponse(msg string, err error) APIResponse {
	return APIResponse{Status: 400, Msg: errMsg(msg, err)}
}

// NotFoundResponse 资源不存在响应
func NotFoundResponse(msg string, err error) APIResponse {
	return APIResponse{Status: 404, Msg: errMsg(msg, err)}
}

// ServiceUnavailableResponse 依赖服务不可用响应
func ServiceUnavailableResponse(msg string) APIResponse {
	return APIResponse{Status: 503, Msg: msg}
}

// InternalErrorResponse 服务器内部错误响应
func InternalErrorResponse(msg string, err error) APIResponse {
	return APIResponse{Status: 500, Msg: errMsg(msg, err)}
}

func errMsg(msg string, err error) string {
	if err != nil {
		return msg + ": " + err.Error()
	}
	return msg
}

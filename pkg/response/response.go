package response

type ResponseCode int

// 统一业务代码
const (
	Success ResponseCode = 100
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

type ResponseOptions func(*Response)

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := SuccessResponse(nil)
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
		Data:    nil,
	}
}

// FromError 将任意错误转换为响应体，返回对应的 HTTP 状态码
func FromError(err error) (int, Response) {
	be := AsBusinessError(err)
	return HTTPStatus(be.Code), ErrorResponse(be.Code, be.Msg)
}

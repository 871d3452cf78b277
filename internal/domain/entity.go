package domain

// Reference 表示指向另一个实体的超链接引用。
//
// 引用只携带链接和显示名称，绝不内嵌被引用实体本身。
type Reference struct {
	Ref  string `json:"$ref"`
	Name string `json:"name,omitempty"`
}

// Link 表示一个纯链接值（例如照片的 data URI）。
type Link struct {
	Href string `json:"$href"`
}

// ErrorDetail 记录单个实体映射失败的原因。
type ErrorDetail struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorStub 是实体映射失败时的降级产物：集合中对应位置
// 被替换为该占位对象，其余实体不受影响。
type ErrorStub struct {
	Self  string      `json:"$self"`
	Error ErrorDetail `json:"error"`
}

// NewErrorStub 构造一个标准错误占位实体。
func NewErrorStub(message, stack string) *ErrorStub {
	return &ErrorStub{
		Self:  "#/error",
		Error: ErrorDetail{Message: message, Stack: stack},
	}
}

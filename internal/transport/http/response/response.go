package response

// Resp 统一返回结构：{ success, data?, error?, message?, count? }
type Resp struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// OK 成功响应
func OK(data any) Resp {
	return Resp{Success: true, Data: data}
}

// List 成功响应并带上条数
func List(data any, n int) Resp {
	return Resp{Success: true, Data: data, Count: &n}
}

// Msg 成功响应，只带提示信息
func Msg(msg string, data any) Resp {
	return Resp{Success: true, Data: data, Message: msg}
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	if msg == "" {
		msg = "Error"
	}
	return Resp{Success: false, Error: msg}
}

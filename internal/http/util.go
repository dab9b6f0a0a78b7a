package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// parseIntParam 解析查询参数里的整数；为空用默认值，非数字报错
func parseIntParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// readBodyJSON 读取并解析请求体
// 返回 (false, nil) 表示请求体为空。
func readBodyJSON(r *http.Request, maxBytes int64, out any) (bool, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return false, err
	}
	if len(body) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, err
	}
	return true, nil
}

// readBodyObject 读取请求体并按 JSON 对象解析，返回顶层键的数量
// 请求体为空、`null` 或 `{}` 时键数为 0，out 不被填充。
func readBodyObject(r *http.Request, maxBytes int64, out any) (int, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return 0, err
	}
	if len(body) == 0 {
		return 0, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return 0, err
	}
	return len(fields), nil
}

package payload

type listStrategy func(body any, entity string) ([]any, bool)

// Order matters: the first strategy that yields an array wins.
var listStrategies = []listStrategy{
	bareList,
	dataList,
	entityList,
}

// UnwrapList extracts a list of records from a response body shaped as a bare
// array, {"data": [...]} or {"<entity>": [...]}.
func UnwrapList(body any, entity string) ([]any, bool) {
	for _, strategy := range listStrategies {
		if items, ok := strategy(body, entity); ok {
			return items, true
		}
	}
	return nil, false
}

// UnwrapObject returns the object nested under "data" when present, otherwise
// the body itself. Non-objects yield nil.
func UnwrapObject(body any) map[string]any {
	obj, ok := Object(body)
	if !ok {
		return nil
	}
	if inner, ok := Object(obj["data"]); ok {
		return inner
	}
	return obj
}

// Records keeps the object entries of a list and drops everything else.
func Records(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := Object(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

func bareList(body any, _ string) ([]any, bool) {
	items, ok := body.([]any)
	if !ok {
		return nil, false
	}
	if items == nil {
		items = []any{}
	}
	return items, true
}

func dataList(body any, _ string) ([]any, bool) {
	obj, ok := Object(body)
	if !ok {
		return nil, false
	}
	return bareList(obj["data"], "")
}

func entityList(body any, entity string) ([]any, bool) {
	obj, ok := Object(body)
	if !ok || entity == "" {
		return nil, false
	}
	return bareList(obj[entity], "")
}

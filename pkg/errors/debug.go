package errors

import "errors"

// DumpInfo flattens an error chain for structured logging.
type DumpInfo struct {
	TopMessage string
	Code       string
	Chain      []string
}

// Dump walks the wrapped chain and collects every message plus the first code found.
func Dump(err error) DumpInfo {
	info := DumpInfo{}
	if err == nil {
		return info
	}
	info.TopMessage = err.Error()

	for current := err; current != nil; current = errors.Unwrap(current) {
		info.Chain = append(info.Chain, current.Error())
		if info.Code == "" {
			if typed := As(current); typed != nil {
				info.Code = string(typed.Code())
			}
		}
	}
	return info
}

package service

// fieldRule 单条字段校验规则
type fieldRule struct {
	ok  bool
	err error
}

// firstViolation 返回第一条未通过的规则
func firstViolation(rules ...fieldRule) error {
	for _, rule := range rules {
		if !rule.ok {
			return rule.err
		}
	}
	return nil
}

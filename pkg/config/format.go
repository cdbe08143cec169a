package config

// FormatRuleID renders a rule identifier in the given style. Unknown styles
// render the name; rules without a name always render by ID.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	switch {
	case ruleName == "" || format == RuleFormatID:
		return ruleID
	case format == RuleFormatCombined:
		return ruleID + "/" + ruleName
	default:
		return ruleName
	}
}

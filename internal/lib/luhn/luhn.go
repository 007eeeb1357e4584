// Package luhn реализует проверку номера карты по алгоритму Луна.
package luhn

// Valid проверяет контрольную сумму номера карты.
// Строка с любым нецифровым символом считается невалидной.
func Valid(pan string) bool {
	if pan == "" {
		return false
	}
	sum := 0
	double := len(pan)%2 == 0
	for _, r := range pan {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

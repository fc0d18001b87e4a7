package availability

// GenerateSlots returns candidate start minutes from openMin (inclusive) to closeMin (exclusive)
// stepping by interval. A day with openMin >= closeMin yields no slots.
func GenerateSlots(openMin, closeMin, interval int) ([]int, error) {
	if interval <= 0 {
		return nil, &ConfigError{Field: "slot_interval_minutes", Reason: "интервал должен быть положительным"}
	}

	if openMin >= closeMin {
		return []int{}, nil
	}

	slots := make([]int, 0, (closeMin-openMin+interval-1)/interval)
	for s := openMin; s < closeMin; s += interval {
		slots = append(slots, s)
	}

	return slots, nil
}

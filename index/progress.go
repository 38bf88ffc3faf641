package index

// progressMarkers returns the entry positions, in deciles of total, at
// which a driving CLI should report build progress (§4.6 step 10).
func progressMarkers(total int) []int {
	if total <= 0 {
		return nil
	}

	markers := make([]int, 0, 9)

	for percent := 10; percent < 100; percent += 10 {
		mark := total * percent / 100
		if mark < 1 {
			mark = 1
		}

		markers = append(markers, mark)
	}

	return markers
}

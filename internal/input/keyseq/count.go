package keyseq

import "math"

// maxCount caps accumulated counts instead of overflowing.
const maxCount = math.MaxInt32

// IsCountStart returns true if the character could start a count.
// '0' cannot start a count.
func IsCountStart(b byte) bool {
	return b >= '1' && b <= '9'
}

// IsCountDigit returns true if the character is a digit valid in a count.
func IsCountDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// splitCount strips a leading count from keys.
// It returns the count (0 if none), whether a count was present and the rest.
func splitCount(keys string) (count int, ok bool, rest string) {
	if keys == "" || !IsCountStart(keys[0]) {
		return 0, false, keys
	}

	i := 0
	for i < len(keys) && IsCountDigit(keys[i]) {
		digit := int(keys[i] - '0')
		if count > (maxCount-digit)/10 {
			count = maxCount
		} else {
			count = count*10 + digit
		}
		i++
	}
	return count, true, keys[i:]
}

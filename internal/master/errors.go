package master

import "fmt"

func errDetailRange(w, n int) string {
	return fmt.Sprintf("w must be between 1 and %d", n)
}

func errMsgNotSatisfied(w int) string {
	return fmt.Sprintf("Write concern w=%d not satisfied", w)
}

func errDetailTimeout(required, got int) string {
	return fmt.Sprintf("required %d acks, got %d", required, got)
}

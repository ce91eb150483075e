package bookingRepo

import "fmt"

func errNotFound(id int64) error {
	return fmt.Errorf("booking %d not found", id)
}

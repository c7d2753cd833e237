package ids

import (
	"github.com/google/uuid"
)

func NewUniqueId() string {
	return uuid.NewString()
}

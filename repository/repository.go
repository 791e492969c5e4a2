// Package repository holds the gorm-backed stores. Every method takes the
// request context and translates gorm.ErrRecordNotFound into utils.ErrNotFound.
package repository

import (
	"errors"
	"fmt"

	"github.com/zachariahbioto-bot/Nutrition/utils"
	"gorm.io/gorm"
)

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, utils.ErrNotFound)
	}
	return err
}

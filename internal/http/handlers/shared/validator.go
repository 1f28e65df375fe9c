package shared

import (
	"sync"

	"github.com/newsportal/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义 binding 规则，可重复调用
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		err = engine.RegisterValidation("slotkey", func(fl validator.FieldLevel) bool {
			return service.IsValidSlotKey(fl.Field().String())
		})
	})
	return err
}

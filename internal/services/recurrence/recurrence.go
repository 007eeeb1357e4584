// Package recurrence содержит единственную точку вычисления режима
// сохранения способа оплаты. Режим определяет, что показывается
// пользователю, а итоговый флаг save_payment_method выводится только
// из режима и текущего положения переключателя — нигде больше эта
// логика не повторяется.
package recurrence

import "github.com/magabrotheeeer/checkout-tokenizer/internal/models"

// Mode режим отображения блока "сохранить способ оплаты".
type Mode string

const (
	// ModeHidden блок не показывается, сохранение невозможно.
	ModeHidden Mode = "hidden"
	// ModeSavePaymentData переключатель сохранения платёжных данных.
	ModeSavePaymentData Mode = "save_payment_data"
	// ModeAllowRecurring переключатель разрешения автосписаний.
	ModeAllowRecurring Mode = "allow_recurring"
	// ModeAllowRecurringAndSaveData переключатель автосписаний и сохранения данных.
	ModeAllowRecurringAndSaveData Mode = "allow_recurring_and_save_data"
	// ModeRequiredRecurring автосписания обязательны, без переключателя.
	ModeRequiredRecurring Mode = "required_recurring"
	// ModeRequiredSaveData сохранение данных обязательно, без переключателя.
	ModeRequiredSaveData Mode = "required_save_data"
	// ModeRequiredRecurringAndSaveData обязательны и автосписания, и сохранение.
	ModeRequiredRecurringAndSaveData Mode = "required_recurring_and_save_data"
)

// Switchable сообщает, управляет ли пользователь переключателем
// в данном режиме.
func (m Mode) Switchable() bool {
	switch m {
	case ModeSavePaymentData, ModeAllowRecurring, ModeAllowRecurringAndSaveData:
		return true
	default:
		return false
	}
}

// input тройка, по которой вычисляется режим.
type input struct {
	client  models.SavePaymentMethod
	api     models.APISavePaymentMethod
	canSave bool
}

// Resolve вычисляет режим по тройке (политика мерчанта, политика шлюза,
// возможность сохранить конкретный инструмент). Функция чистая и
// тотальная: каждая комбинация даёт ровно один режим, неизвестная
// политика шлюза всегда прячет блок.
func Resolve(client models.SavePaymentMethod, api models.APISavePaymentMethod, canSaveInstrument bool) Mode {
	switch (input{client, api, canSaveInstrument}) {
	case input{models.SaveOff, models.APISaveForbidden, true},
		input{models.SaveOff, models.APISaveAllowed, true},
		input{models.SaveUserSelects, models.APISaveForbidden, true}:
		return ModeSavePaymentData

	case input{models.SaveUserSelects, models.APISaveAllowed, false}:
		return ModeAllowRecurring

	case input{models.SaveUserSelects, models.APISaveAllowed, true}:
		return ModeAllowRecurringAndSaveData

	case input{models.SaveOn, models.APISaveAllowed, true}:
		return ModeRequiredRecurringAndSaveData

	case input{models.SaveOn, models.APISaveAllowed, false}:
		return ModeRequiredRecurring

	case input{models.SaveOn, models.APISaveForbidden, true}:
		// Автосписания запрещены шлюзом, но мерчант требует сохранить
		// сам инструмент.
		return ModeRequiredSaveData

	default:
		return ModeHidden
	}
}

// Derive выводит итоговый флаг save_payment_method из режима и
// положения переключателя. Только это значение уходит в запрос
// токенизации.
func Derive(mode Mode, toggle bool) bool {
	switch mode {
	case ModeRequiredRecurring, ModeRequiredSaveData, ModeRequiredRecurringAndSaveData:
		return true
	case ModeSavePaymentData, ModeAllowRecurring, ModeAllowRecurringAndSaveData:
		return toggle
	default:
		return false
	}
}

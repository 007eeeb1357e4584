package payment

import (
	"context"
	"errors"
	"net"
	"net/url"
)

var (
	// ErrEmptyList шлюз не вернул ни одного способа оплаты.
	ErrEmptyList = errors.New("no payment options available")
	// ErrInternetConnection сетевая ошибка уровня соединения.
	ErrInternetConnection = errors.New("internet connection problem")
	// ErrUnsupportedTokenizeData в диспетчер передан неизвестный вариант данных.
	ErrUnsupportedTokenizeData = errors.New("unsupported tokenize data")
)

// mapError переводит транспортные ошибки в ErrInternetConnection,
// остальные ошибки возвращает без изменений.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrInternetConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrInternetConnection
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrInternetConnection
	}
	return err
}

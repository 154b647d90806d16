package domain

import "time"

type NotificationKind string

const (
	NotificationAddFailed    NotificationKind = "add_failed"
	NotificationRemoveFailed NotificationKind = "remove_failed"
	NotificationUpdateFailed NotificationKind = "update_failed"
	NotificationOutOfStock   NotificationKind = "out_of_stock"
)

type Notification struct {
	ID        string
	Kind      NotificationKind
	ProductID int
	Message   string
	CreatedAt time.Time
}

// Messages holds the user-visible text for each notification kind.
type Messages struct {
	AddFailed    string `yaml:"add_failed"`
	RemoveFailed string `yaml:"remove_failed"`
	UpdateFailed string `yaml:"update_failed"`
	OutOfStock   string `yaml:"out_of_stock"`
}

// DefaultMessages are the pt-BR texts the storefront ships with.
func DefaultMessages() Messages {
	return Messages{
		AddFailed:    "Erro na adição do produto",
		RemoveFailed: "Erro na remoção do produto",
		UpdateFailed: "Erro na alteração de quantidade do produto",
		OutOfStock:   "Quantidade solicitada fora de estoque",
	}
}

func (m Messages) For(kind NotificationKind) string {
	switch kind {
	case NotificationAddFailed:
		return m.AddFailed
	case NotificationRemoveFailed:
		return m.RemoveFailed
	case NotificationUpdateFailed:
		return m.UpdateFailed
	case NotificationOutOfStock:
		return m.OutOfStock
	}
	return ""
}

// WithDefaults fills empty texts from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.AddFailed == "" {
		m.AddFailed = d.AddFailed
	}
	if m.RemoveFailed == "" {
		m.RemoveFailed = d.RemoveFailed
	}
	if m.UpdateFailed == "" {
		m.UpdateFailed = d.UpdateFailed
	}
	if m.OutOfStock == "" {
		m.OutOfStock = d.OutOfStock
	}
	return m
}

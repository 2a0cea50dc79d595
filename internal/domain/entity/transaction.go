package entity

import "time"

// Tipos de transacción del libro de stock.
const (
	TransactionTypeADD        = "ADD"        // entrada
	TransactionTypeREMOVE     = "REMOVE"     // salida
	TransactionTypeTRANSFER   = "TRANSFER"   // reservado: las transferencias se registran como REMOVE + ADD
	TransactionTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual, cualquier signo
)

// Transaction registro inmutable de un cambio de cantidad (append-only).
// Quantity es la magnitud del delta aplicado (siempre >= 0); el signo lo da Type.
type Transaction struct {
	ID            string
	CorrelationID string // comparte valor entre los dos registros de una transferencia
	Type          string
	Quantity      int
	Reason        string
	UserID        string
	ItemID        string
	UnitID        string
	Timestamp     time.Time
}

// ValidTransactionType indica si t es un tipo conocido.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeADD, TransactionTypeREMOVE, TransactionTypeTRANSFER, TransactionTypeADJUSTMENT:
		return true
	}
	return false
}

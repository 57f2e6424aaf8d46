package model

import "time"

// Transaction is a decoded transaction with all inputs resolved to
// their source addresses and amounts.
type Transaction struct {
	Coin        Coin
	Network     Network
	TxID        string
	BlockHeight uint64
	Timestamp   time.Time
	IsCoinbase  bool
	Inputs      []Input
	Outputs     []Output
}

// Input references a prior transaction output, resolved to the amount
// and address it carried. Coinbase inputs have no prior source.
type Input struct {
	PrevTxID   string
	PrevVout   uint32
	Value      uint64
	Address    string
	IsCoinbase bool
}

// Output is a destination of value within its transaction, ordered by
// Index.
type Output struct {
	Index   uint32
	Value   uint64
	Address string
}

// InputTotal sums the resolved input amounts.
func (t Transaction) InputTotal() uint64 {
	var total uint64
	for _, in := range t.Inputs {
		total += in.Value
	}
	return total
}

// OutputTotal sums the output amounts.
func (t Transaction) OutputTotal() uint64 {
	var total uint64
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

// Fee is inputs minus outputs. Coinbase transactions mint value, so
// their fee is zero.
func (t Transaction) Fee() uint64 {
	if t.IsCoinbase {
		return 0
	}
	in, out := t.InputTotal(), t.OutputTotal()
	if out > in {
		return 0
	}
	return in - out
}

// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package state implements the journaled account overlay system operations
// mutate and roll back. Unlike go-ethereum's core/state, which journals
// individual field mutations for fine-grained revert, this overlay follows
// the upstream design it was distilled from: Copy clones the whole account
// map eagerly, and a reverted child is simply discarded in favor of the
// parent snapshot it was copied from.
package state

import (
	"maps"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holiman/uint256"

	"github.com/ClementWalter/kakarot/common"
	"github.com/ClementWalter/kakarot/params"
)

// Account is an EVM account: balance, nonce, code, and storage.
type Account struct {
	Balance    *uint256.Int
	Nonce      uint64
	Code       []byte
	Storage    map[uint256.Int]uint256.Int
	Destructed bool
}

// NewAccount returns the cold default account spec.md's get_account lazily
// inserts for an address it has not seen before.
func NewAccount() *Account {
	return &Account{
		Balance: new(uint256.Int),
		Storage: make(map[uint256.Int]uint256.Int),
	}
}

// Clone deep-copies acc so a child Overlay can mutate its own copy without
// disturbing the parent's.
func (acc *Account) Clone() *Account {
	clone := &Account{
		Balance:    new(uint256.Int).Set(acc.Balance),
		Nonce:      acc.Nonce,
		Destructed: acc.Destructed,
	}
	if acc.Code != nil {
		clone.Code = append([]byte(nil), acc.Code...)
	}
	clone.Storage = maps.Clone(acc.Storage)
	if clone.Storage == nil {
		clone.Storage = make(map[uint256.Int]uint256.Int)
	}
	return clone
}

// HasCodeOrNonce reports whether acc looks like a pre-existing account for
// CREATE collision purposes: non-empty code, or a non-zero nonce.
func HasCodeOrNonce(acc *Account) bool {
	return len(acc.Code) > 0 || acc.Nonce > 0
}

// Overlay is a journaled mapping from address to Account. A child overlay
// produced by Copy observes the parent's accounts but never mutates them in
// place; Commit folds a child's mutations back into its parent, and a
// reverted child is simply dropped.
type Overlay struct {
	accounts map[common.EvmAddress]*Account
	touched  mapset.Set[common.EvmAddress]
}

// New returns an empty root Overlay.
func New() *Overlay {
	return &Overlay{
		accounts: make(map[common.EvmAddress]*Account),
		touched:  mapset.NewSet[common.EvmAddress](),
	}
}

// GetAccount returns the account at addr, inserting a cold default account
// if none exists yet (spec.md's get_account).
func (o *Overlay) GetAccount(addr common.EvmAddress) *Account {
	o.touched.Add(addr)
	acc, ok := o.accounts[addr]
	if !ok {
		acc = NewAccount()
		o.accounts[addr] = acc
	}
	return acc
}

// SetAccount replaces the account stored at addr.
func (o *Overlay) SetAccount(addr common.EvmAddress, acc *Account) {
	o.touched.Add(addr)
	o.accounts[addr] = acc
}

// SetNonce sets the nonce of the account at addr, bounded by MaxNonce.
func (o *Overlay) SetNonce(addr common.EvmAddress, nonce uint64) error {
	if nonce > params.MaxNonce {
		return ErrNonceOverflow
	}
	o.GetAccount(addr).Nonce = nonce
	return nil
}

// SetCode installs code as the deployed bytecode of the account at addr.
func (o *Overlay) SetCode(addr common.EvmAddress, code []byte) {
	o.GetAccount(addr).Code = code
}

// SelfDestruct marks the account at addr destructed. destructed is
// monotone within a transaction: once set it is never cleared by this
// overlay.
func (o *Overlay) SelfDestruct(addr common.EvmAddress) {
	o.GetAccount(addr).Destructed = true
}

// Transfer describes a value movement between two accounts of the same
// overlay.
type Transfer struct {
	From   common.EvmAddress
	To     common.EvmAddress
	Amount *uint256.Int
}

// AddTransfer debits From and credits To by Amount, atomically. It leaves
// every balance unchanged and returns false if From's balance is
// insufficient (From is still read, so it is added to the touched set); a zero-amount transfer always succeeds, touching both
// accounts without changing any balance.
func (o *Overlay) AddTransfer(t Transfer) (ok bool) {
	from := o.GetAccount(t.From)
	if from.Balance.Lt(t.Amount) {
		return false
	}
	to := o.GetAccount(t.To)
	if t.Amount.IsZero() {
		return true
	}
	from.Balance = new(uint256.Int).Sub(from.Balance, t.Amount)
	to.Balance = new(uint256.Int).Add(to.Balance, t.Amount)
	return true
}

// Copy returns a child overlay whose account map is a deep, eager clone of
// o's. Mutations to the child are invisible to o until Commit folds them
// back in; on discard (revert), o is never touched in the first place.
func (o *Overlay) Copy() *Overlay {
	accounts := make(map[common.EvmAddress]*Account, len(o.accounts))
	for addr, acc := range o.accounts {
		accounts[addr] = acc.Clone()
	}
	touched := mapset.NewSet[common.EvmAddress]()
	touched.Append(o.touched.ToSlice()...)
	return &Overlay{accounts: accounts, touched: touched}
}

// Commit replaces o's accounts and touched set with child's, adopting every
// mutation the child (and its own descendants, already folded into child)
// made. Call only when the child frame did not revert.
func (o *Overlay) Commit(child *Overlay) {
	o.accounts = child.accounts
	o.touched.Append(child.touched.ToSlice()...)
}

// Touched returns every address this overlay (and its ancestry, once
// committed) has read or written, for the engine's touched-address report.
func (o *Overlay) Touched() []common.EvmAddress {
	return o.touched.ToSlice()
}

// BalanceSum returns the sum of every account's balance, used by tests to
// assert balance conservation across a transfer.
func (o *Overlay) BalanceSum() *uint256.Int {
	sum := new(uint256.Int)
	for _, acc := range o.accounts {
		sum = sum.Add(sum, acc.Balance)
	}
	return sum
}

package main

import (
	"encoding/json"
	"io"
	"math/big"
	"time"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	"github.com/solotto/solotto-go/pkg/lotto"
	"github.com/solotto/solotto-go/pkg/lotto/watch"
	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

const (
	lamportsPerSolExponent = -9

	newRelicShutdownTimeout = 5 * time.Second
)

func lamportsToSol(lamports decimal.Decimal) string {
	return lamports.Shift(lamportsPerSolExponent).String()
}

func encodeKey(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return base58.Encode(key)
}

type lotteryView struct {
	Address            string  `json:"address"`
	Authority          string  `json:"authority"`
	LotteryId          uint64  `json:"lottery_id"`
	TicketPrice        string  `json:"ticket_price_sol"`
	TotalTickets       uint64  `json:"total_tickets"`
	WinnerTicketNumber *uint64 `json:"winner_ticket_number"`
	WinnerAddress      string  `json:"winner_address,omitempty"`
	IsActive           bool    `json:"is_active"`
	PrizePool          uint64  `json:"prize_pool_lamports"`
	PrizePoolBalance   string  `json:"prize_pool_sol"`
	PrizePoolAddress   string  `json:"prize_pool_address"`
	DrawInitiated      bool    `json:"draw_initiated"`
	ReleaseTimestamp   *uint64 `json:"release_timestamp"`
}

func newLotteryView(state *lottery.LotteryState) *lotteryView {
	return &lotteryView{
		Address:            encodeKey(state.LotteryAddress),
		Authority:          encodeKey(state.Authority),
		LotteryId:          state.LotteryId,
		TicketPrice:        lamportsToSol(decimal.NewFromBigInt(new(big.Int).SetUint64(state.TicketPrice), 0)),
		TotalTickets:       state.TotalTickets,
		WinnerTicketNumber: state.WinnerTicketNumber,
		WinnerAddress:      encodeKey(state.WinnerAddress),
		IsActive:           state.IsActive,
		PrizePool:          state.PrizePool,
		PrizePoolBalance:   lamportsToSol(state.PrizePoolBalance),
		PrizePoolAddress:   encodeKey(state.PrizePoolAddress),
		DrawInitiated:      state.DrawInitiated,
		ReleaseTimestamp:   state.ReleaseTimestamp,
	}
}

type ticketView struct {
	Address   string `json:"address"`
	Number    uint64 `json:"number"`
	Owner     string `json:"owner"`
	Receipt   string `json:"receipt"`
	Lottery   string `json:"lottery"`
	LotteryId uint64 `json:"lottery_id"`
	Authority string `json:"authority"`
}

func newTicketView(ticket *lottery.TicketState) *ticketView {
	return &ticketView{
		Address:   encodeKey(ticket.TicketAddress),
		Number:    ticket.TicketNumber,
		Owner:     encodeKey(ticket.Owner),
		Receipt:   encodeKey(ticket.TicketReceipt),
		Lottery:   encodeKey(ticket.Lottery),
		LotteryId: ticket.LotteryId,
		Authority: encodeKey(ticket.Authority),
	}
}

type ticketListView struct {
	LotteryId      uint64        `json:"lottery_id"`
	LotteryAddress string        `json:"lottery_address"`
	Authority      string        `json:"authority"`
	Buyer          string        `json:"buyer"`
	Tickets        []*ticketView `json:"tickets"`
}

func newTicketListView(list *lotto.TicketList) *ticketListView {
	view := &ticketListView{
		LotteryId:      list.LotteryId,
		LotteryAddress: encodeKey(list.LotteryAddress),
		Authority:      encodeKey(list.Authority),
		Buyer:          list.Buyer,
		Tickets:        make([]*ticketView, 0, len(list.Tickets)),
	}
	for _, ticket := range list.Tickets {
		view.Tickets = append(view.Tickets, newTicketView(ticket))
	}
	return view
}

type transactionView struct {
	Transaction string `json:"transaction"`
	Size        int    `json:"size"`
}

func newTransactionView(built *network.BuiltTransaction) *transactionView {
	return &transactionView{
		Transaction: built.Encoded,
		Size:        len(built.Raw),
	}
}

type outcomeView struct {
	Signature string `json:"signature"`
	Outcome   string `json:"outcome"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
}

func newOutcomeView(outcome *network.Outcome) *outcomeView {
	view := &outcomeView{
		Signature: outcome.Signature.String(),
		Outcome:   outcome.Kind.String(),
		Message:   outcome.Message,
	}
	if outcome.Err != nil {
		view.Error = outcome.Err.Error()
	}
	return view
}

type eventView struct {
	Event               string `json:"event"`
	Signature           string `json:"signature,omitempty"`
	Slot                uint64 `json:"slot,omitempty"`
	WinningTicketNumber uint64 `json:"winning_ticket_number,omitempty"`
	Error               string `json:"error,omitempty"`
	Delay               string `json:"delay,omitempty"`
}

func newEventView(e watch.Event) *eventView {
	view := &eventView{Event: e.Kind.String()}
	switch e.Kind {
	case watch.EventDraw:
		view.Signature = e.Draw.Signature.String()
		view.Slot = e.Draw.Slot
		view.WinningTicketNumber = e.Draw.WinningTicketNumber
	case watch.EventError:
		if e.Err != nil {
			view.Error = e.Err.Error()
		}
	case watch.EventReconnecting:
		view.Delay = e.Delay.String()
	}
	return view
}

type lookupTableView struct {
	Address   string   `json:"address"`
	Addresses []string `json:"addresses"`
}

func newLookupTableView(table *solana.AddressLookupTable) *lookupTableView {
	view := &lookupTableView{
		Address:   encodeKey(table.PublicKey),
		Addresses: make([]string, len(table.Addresses)),
	}
	for i, address := range table.Addresses {
		view.Addresses[i] = encodeKey(address)
	}
	return view
}

func render(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

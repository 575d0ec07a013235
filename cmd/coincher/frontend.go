package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gyscos/coinched/bid"
	"github.com/gyscos/coinched/cards"
	"github.com/gyscos/coinched/client"
	"github.com/gyscos/coinched/events"
	"github.com/gyscos/coinched/pos"
)

var (
	redCard     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	blackCard   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	seatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func renderCard(c cards.Card) string {
	s := c.Rank().String() + c.Suit().Symbol()
	if c.Suit() == cards.Hearts || c.Suit() == cards.Diamonds {
		return redCard.Render(s)
	}
	return blackCard.Render(s)
}

func renderHand(h cards.Hand) string {
	parts := make([]string, 0, h.Size())
	for _, c := range h.List() {
		parts = append(parts, renderCard(c))
	}
	return strings.Join(parts, " ")
}

// termFrontend prompts on stdin and renders the table on stdout.
type termFrontend struct {
	in   *bufio.Scanner
	seat pos.PlayerPos
	hand cards.Hand
}

func newTermFrontend(seat pos.PlayerPos) *termFrontend {
	return &termFrontend{
		in:   bufio.NewScanner(os.Stdin),
		seat: seat,
	}
}

func (f *termFrontend) seatName(p pos.PlayerPos) string {
	if p == f.seat {
		return seatStyle.Render("you")
	}
	return seatStyle.Render(p.String())
}

func (f *termFrontend) ShowError(err error) {
	fmt.Println(errorStyle.Render("error: " + err.Error()))
}

func (f *termFrontend) UnexpectedEvent(e events.EventType) {
	fmt.Println(errorStyle.Render("unexpected event: " + e.Type()))
}

func (f *termFrontend) PartyCancelled(msg string) {
	fmt.Println(infoStyle.Render("party over: " + msg))
}

func (f *termFrontend) NewGame(first pos.PlayerPos, hand cards.Hand) {
	f.hand = hand
	fmt.Printf("\nnew deal, %s starts\nyour hand: %s\n", f.seatName(first), renderHand(hand))
}

func (f *termFrontend) ShowBid(p pos.PlayerPos, suit cards.Suit, target bid.Target) {
	fmt.Printf("%s bids %s%s\n", f.seatName(p), target, suit.Symbol())
}

func (f *termFrontend) ShowPass(p pos.PlayerPos) {
	fmt.Printf("%s passes\n", f.seatName(p))
}

func (f *termFrontend) ShowCoinche(p pos.PlayerPos) {
	fmt.Printf("%s coinches!\n", f.seatName(p))
}

func (f *termFrontend) ShowCardPlayed(p pos.PlayerPos, c cards.Card) {
	if p == f.seat {
		f.hand.Remove(c)
	}
	fmt.Printf("%s plays %s\n", f.seatName(p), renderCard(c))
}

func (f *termFrontend) AuctionCancelled() {
	fmt.Println(infoStyle.Render("everyone passed, dealing again"))
}

func (f *termFrontend) AuctionOver(c bid.Contract) {
	fmt.Println(infoStyle.Render("contract settled: " + c.String()))
}

func (f *termFrontend) TrickOver(winner pos.PlayerPos) {
	fmt.Printf("trick goes to %s\n", f.seatName(winner))
}

func (f *termFrontend) GameOver(points [2]int, winner pos.Team, scores [2]int) {
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"deal over: points %v, %s wins, scored %v", points, winner, scores)))
}

// prompt reads one trimmed line, or "leave" when stdin closes.
func (f *termFrontend) prompt(msg string) string {
	fmt.Print(promptStyle.Render(msg))
	if !f.in.Scan() {
		return "leave"
	}
	return strings.TrimSpace(f.in.Text())
}

func (f *termFrontend) AskBid() client.AuctionAction {
	for {
		line := f.prompt("your bid [pass | coinche | <target> <suit> | leave] > ")
		switch line {
		case "leave":
			return client.AuctionAction{Type: client.AuctionLeave}
		case "pass":
			return client.AuctionAction{Type: client.AuctionPass}
		case "coinche":
			return client.AuctionAction{Type: client.AuctionCoinche}
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Println(errorStyle.Render("try \"80 H\", \"pass\", \"coinche\" or \"leave\""))
			continue
		}
		target, err := bid.TargetFromString(fields[0])
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		suit, err := cards.SuitFromString(fields[1])
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		return client.AuctionAction{Type: client.AuctionBid, Suit: suit, Target: target}
	}
}

func (f *termFrontend) AskCard() client.GameAction {
	for {
		fmt.Printf("your hand: %s\n", renderHand(f.hand))
		line := f.prompt("your card [e.g. 8C | leave] > ")
		if line == "leave" {
			return client.GameAction{Type: client.GameLeave}
		}
		c, err := cards.CardFromString(line)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		return client.GameAction{Type: client.GamePlayCard, Card: c}
	}
}

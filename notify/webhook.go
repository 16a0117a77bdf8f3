package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Embed colors for the dealership's order channel.
const (
	colorNewOrder = 0xff4400
	colorApproved = 0x00ff88
	colorRejected = 0xff4757
	colorOther    = 0xffb142
)

const footerText = "GTA V Dealership"

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []EmbedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    EmbedFooter  `json:"footer"`
}

// NewOrder describes a freshly submitted order.
type NewOrder struct {
	Customer       string
	Vehicle        string
	Price          float64
	PrimaryColor   string
	SecondaryColor string
}

// OrderUpdate describes a status change on an existing order.
type OrderUpdate struct {
	OrderID string
	Status  string
}

// NewOrderEmbed builds the embed announcing a new order.
func NewOrderEmbed(n NewOrder) Embed {
	return Embed{
		Title: "🚗 New Vehicle Order",
		Color: colorNewOrder,
		Fields: []EmbedField{
			{Name: "Customer", Value: n.Customer, Inline: true},
			{Name: "Vehicle", Value: n.Vehicle, Inline: true},
			{Name: "Price", Value: fmt.Sprintf("$%.0f", n.Price), Inline: true},
			{Name: "Colors", Value: "Primary: " + n.PrimaryColor + "\nSecondary: " + n.SecondaryColor},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    EmbedFooter{Text: footerText},
	}
}

// OrderUpdateEmbed builds the embed announcing a status change.
func OrderUpdateEmbed(u OrderUpdate) Embed {
	color := colorOther
	switch u.Status {
	case "approved":
		color = colorApproved
	case "rejected":
		color = colorRejected
	}

	shortID := u.OrderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	return Embed{
		Title: "📋 Order Status Updated",
		Color: color,
		Fields: []EmbedField{
			{Name: "Order ID", Value: shortID, Inline: true},
			{Name: "New Status", Value: strings.ToUpper(u.Status), Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    EmbedFooter{Text: footerText},
	}
}

// Webhook delivers embeds to a Discord webhook URL, best-effort.
type Webhook struct {
	URL  string
	http *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a webhook URL is set.
func (w *Webhook) Configured() bool {
	return w.URL != ""
}

// Send posts the embed. Delivery failures are returned for logging but
// callers treat them as non-fatal.
func (w *Webhook) Send(embed Embed) error {
	payload, err := json.Marshal(map[string]interface{}{
		"embeds": []Embed{embed},
	})
	if err != nil {
		return err
	}

	resp, err := w.http.Post(w.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

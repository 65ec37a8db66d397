// booking-sim drives a full booking round-trip against a running
// scheduling-service: query slots, reserve the first one, then confirm or
// cancel it. Handy for smoke-testing an environment.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	var (
		baseURL  = flag.String("base-url", getenv("BASE_URL", "http://localhost:8080"), "scheduling service base url")
		salonID  = flag.String("salon-id", getenv("SALON_ID", ""), "salon to book at")
		services = flag.String("services", getenv("SERVICES", ""), "comma-separated service ids (svc or svc:variant)")
		customer = flag.String("customer-id", getenv("CUSTOMER_ID", "sim-customer"), "customer id to book as")
		date     = flag.String("date", time.Now().AddDate(0, 0, 1).Format("2006-01-02"), "date to query (YYYY-MM-DD)")
		action   = flag.String("action", "confirm", "what to do with the hold: confirm, cancel or leave")
	)
	flag.Parse()

	if strings.TrimSpace(*salonID) == "" {
		fatal("SALON_ID is required")
	}
	if strings.TrimSpace(*services) == "" {
		fatal("SERVICES is required")
	}

	base := strings.TrimRight(*baseURL, "/")

	slotsURL := fmt.Sprintf("%s/api/v1/public/slots?salon_id=%s&services=%s&date_from=%s",
		base, *salonID, *services, *date)
	var slotsResp struct {
		Slots []struct {
			StartsAt time.Time `json:"starts_at"`
			StaffID  string    `json:"staff_id"`
		} `json:"slots"`
	}
	getJSON(slotsURL, &slotsResp)
	if len(slotsResp.Slots) == 0 {
		fatal("no slots available on " + *date)
	}
	slot := slotsResp.Slots[0]
	fmt.Printf("slot %s staff=%s (%d offered)\n", slot.StartsAt.Format(time.RFC3339), slot.StaffID, len(slotsResp.Slots))

	var selections []map[string]string
	for _, part := range strings.Split(*services, ",") {
		id, variant, _ := strings.Cut(strings.TrimSpace(part), ":")
		sel := map[string]string{"service_id": id}
		if variant != "" {
			sel["variant_id"] = variant
		}
		selections = append(selections, sel)
	}
	var reserveResp struct {
		Appointment struct {
			ID            string `json:"id"`
			Status        string `json:"status"`
			BookingNumber string `json:"booking_number"`
		} `json:"appointment"`
		Deposit *struct {
			AmountCents int64  `json:"amount_cents"`
			Status      string `json:"status"`
		} `json:"deposit"`
	}
	postJSON(base+"/api/v1/public/reservations", map[string]any{
		"salon_id":    *salonID,
		"staff_id":    slot.StaffID,
		"customer_id": *customer,
		"starts_at":   slot.StartsAt.Format(time.RFC3339),
		"services":    selections,
	}, &reserveResp)
	fmt.Printf("reserved appointment=%s status=%s\n", reserveResp.Appointment.ID, reserveResp.Appointment.Status)
	if reserveResp.Deposit != nil {
		fmt.Printf("deposit required: %d cents (%s); confirm will fail until it is paid\n",
			reserveResp.Deposit.AmountCents, reserveResp.Deposit.Status)
	}

	switch *action {
	case "confirm":
		var resp struct {
			Appointment struct {
				Status        string `json:"status"`
				BookingNumber string `json:"booking_number"`
			} `json:"appointment"`
		}
		postJSON(base+"/api/v1/appointments/confirm", map[string]any{
			"appointment_id": reserveResp.Appointment.ID,
		}, &resp)
		fmt.Printf("confirmed status=%s booking_number=%s\n", resp.Appointment.Status, resp.Appointment.BookingNumber)
	case "cancel":
		var resp struct {
			Appointment struct {
				Status string `json:"status"`
			} `json:"appointment"`
		}
		postJSON(base+"/api/v1/appointments/cancel", map[string]any{
			"appointment_id": reserveResp.Appointment.ID,
			"actor":          "customer",
			"reason":         "booking-sim",
		}, &resp)
		fmt.Printf("cancelled status=%s\n", resp.Appointment.Status)
	case "leave":
		fmt.Println("leaving the hold to expire")
	default:
		fatal("unknown action: " + *action)
	}
}

func getJSON(url string, out any) {
	resp, err := http.Get(url)
	if err != nil {
		fatal(err.Error())
	}
	defer resp.Body.Close()
	decode(resp, out, url)
}

func postJSON(url string, body any, out any) {
	payload, err := json.Marshal(body)
	if err != nil {
		fatal(err.Error())
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		fatal(err.Error())
	}
	defer resp.Body.Close()
	decode(resp, out, url)
}

func decode(resp *http.Response, out any, url string) {
	if resp.StatusCode >= 400 {
		var errBody struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		fatal(fmt.Sprintf("%s: status=%d code=%s message=%s", url, resp.StatusCode, errBody.Error.Code, errBody.Error.Message))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fatal(err.Error())
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}

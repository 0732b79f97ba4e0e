package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"tietheknot/internal/budget"
	"tietheknot/internal/config"
	"tietheknot/internal/guest"
	"tietheknot/internal/models"
	"tietheknot/internal/notify"
	"tietheknot/internal/planner"
	"tietheknot/internal/storage"
	"tietheknot/internal/vendor"
)

func main() {
	fmt.Println("💍 TieTheKnot Wedding Planner")
	fmt.Println("=============================")

	// Missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	store, err := storage.NewStore(cfg.DataDir, log)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	notifier, cleanup, err := buildNotifier(cfg)
	if err != nil {
		fmt.Printf("Error initializing reminder channel: %v\n", err)
		os.Exit(1)
	}

	backend := vendor.NewClient(cfg.VendorAPIBaseURL, cfg.VendorAPIToken, log)
	alerts := budget.AlertConfig{
		WarningPercent:  cfg.BudgetWarningPercent,
		CriticalPercent: cfg.BudgetCriticalPercent,
	}
	p := planner.New(store, backend, notifier, alerts, log)

	go startCLI(p)

	// Wait for interrupt signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("\n\nShutting down...")
	cleanup()
	fmt.Println("Goodbye! 👋")
}

func buildNotifier(cfg *config.Config) (notify.Notifier, func(), error) {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.ReminderChannel != "whatsapp" {
		return notify.NewMockNotifier(log), func() {}, nil
	}

	wa, err := notify.NewWhatsAppNotifier(&notify.WhatsAppConfig{DataDir: cfg.WhatsAppDataDir})
	if err != nil {
		return nil, nil, err
	}
	fmt.Println("Connecting to WhatsApp...")
	if err := wa.Connect(); err != nil {
		return nil, nil, err
	}
	fmt.Println("✅ Connected to WhatsApp!")
	return wa, wa.Disconnect, nil
}

func startCLI(p *planner.Planner) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nCommands:")
		fmt.Println("  1. Add guest")
		fmt.Println("  2. View guests")
		fmt.Println("  3. Guest stats & RSVP progress")
		fmt.Println("  4. Mark guest invited")
		fmt.Println("  5. Send RSVP reminders")
		fmt.Println("  6. Budget summary & alerts")
		fmt.Println("  7. Set total budget")
		fmt.Println("  8. Add budget category")
		fmt.Println("  9. Add expense")
		fmt.Println(" 10. View bookings")
		fmt.Println(" 11. Toggle favorite vendor")
		fmt.Println(" 12. Request a quote")
		fmt.Println(" 13. Export guest list (CSV or PDF)")
		fmt.Println(" 14. Export budget (CSV or PDF)")
		fmt.Println(" 15. Wedding info & countdown")
		fmt.Println(" 16. Sync with backend")
		fmt.Println(" 17. Exit")
		fmt.Print("\nEnter command (1-17): ")

		if !scanner.Scan() {
			break
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			addGuest(scanner, p)
		case "2":
			viewGuests(p)
		case "3":
			viewGuestStats(p)
		case "4":
			markInvited(scanner, p)
		case "5":
			sendReminders(scanner, p)
		case "6":
			viewBudget(p)
		case "7":
			setTotalBudget(scanner, p)
		case "8":
			addCategory(scanner, p)
		case "9":
			addExpense(scanner, p)
		case "10":
			viewBookings(p)
		case "11":
			toggleFavorite(scanner, p)
		case "12":
			requestQuote(scanner, p)
		case "13":
			exportGuests(scanner, p)
		case "14":
			exportBudget(scanner, p)
		case "15":
			viewWeddingInfo(scanner, p)
		case "16":
			syncBackend(p)
		case "17":
			fmt.Println("Exiting...")
			os.Exit(0)
		default:
			fmt.Println("Invalid command. Please try again.")
		}
	}
}

func prompt(scanner *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func addGuest(scanner *bufio.Scanner, p *planner.Planner) {
	name, ok := prompt(scanner, "Guest name: ")
	if !ok || name == "" {
		return
	}
	side, ok := prompt(scanner, "Side (bride/groom/mutual): ")
	if !ok {
		return
	}
	phone, ok := prompt(scanner, "Phone (optional): ")
	if !ok {
		return
	}
	countStr, ok := prompt(scanner, "Party size (default 1): ")
	if !ok {
		return
	}
	count := 0
	fmt.Sscanf(countStr, "%d", &count)

	g, err := p.AddGuest(guest.Input{
		Name:       name,
		Side:       models.Side(side),
		Phone:      phone,
		GuestCount: count,
	})
	if err != nil {
		fmt.Printf("❌ Error adding guest: %v\n", err)
		return
	}
	fmt.Printf("✅ Added %s (%s, party of %d)\n", g.Name, g.Side, g.GuestCount)
}

func viewGuests(p *planner.Planner) {
	guests := p.GuestList()
	if len(guests) == 0 {
		fmt.Println("\nNo guests found.")
		return
	}

	fmt.Printf("\n📋 All Guests (%d total):\n", len(guests))
	fmt.Println(strings.Repeat("-", 60))
	for _, g := range guests {
		fmt.Printf("Name: %s\n", g.Name)
		fmt.Printf("Side: %s  Tier: %s  Party: %d\n", g.Side, g.PriorityTier, g.GuestCount)
		fmt.Printf("Status: %s\n", g.RSVPStatus)
		if g.LastReminderSentAt != nil {
			fmt.Printf("Last reminder: %s\n", g.LastReminderSentAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println(strings.Repeat("-", 60))
	}
}

func viewGuestStats(p *planner.Planner) {
	stats := p.Guests.Stats()
	progress := p.Guests.RSVPProgress()

	fmt.Printf("\n📊 Guests: %d records, %d people\n", stats.Total, stats.TotalWithPlusOnes)
	for side, b := range stats.BySide {
		fmt.Printf("  %s: %d records, %d people, %d attending\n", side, b.Guests, b.Headcount, b.Attending)
	}
	fmt.Printf("RSVP: %d attending (%.0f%%), %d pending (%.0f%%), %d declined (%.0f%%), %d no response (%.0f%%)\n",
		progress.Attending, progress.AttendingPercent,
		progress.Pending, progress.PendingPercent,
		progress.Declined, progress.DeclinedPercent,
		progress.NoResponse, progress.NoResponsePercent)
}

func sendReminders(scanner *bufio.Scanner, p *planner.Planner) {
	deadlineStr, ok := prompt(scanner, "RSVP deadline (YYYY-MM-DD, blank = today): ")
	if !ok {
		return
	}
	deadline := time.Now().UTC()
	if deadlineStr != "" {
		parsed, err := time.Parse("2006-01-02", deadlineStr)
		if err != nil {
			fmt.Printf("❌ Invalid date: %v\n", err)
			return
		}
		deadline = parsed
	}

	stragglers := p.Guests.NeedingReminders(deadline)
	if len(stragglers) == 0 {
		fmt.Println("No guests need a reminder. 🎉")
		return
	}

	ids := make([]string, 0, len(stragglers))
	for _, g := range stragglers {
		fmt.Printf("  - %s (%s)\n", g.Name, g.RSVPStatus)
		ids = append(ids, g.ID)
	}

	message := fmt.Sprintf("Friendly reminder to RSVP for the wedding! Please respond by %s.", deadline.Format("January 2, 2006"))
	if err := p.Guests.SendReminders(context.Background(), ids, message); err != nil {
		fmt.Printf("❌ Some reminders failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Sent %d reminder(s)\n", len(ids))
}

func viewBudget(p *planner.Planner) {
	s := p.Budget.Summary()
	fmt.Printf("\n💰 Budget: %s total, %s spent (%.1f%%), %s remaining, %s unallocated\n",
		s.TotalBudget.StringFixed(2), s.TotalSpent.StringFixed(2), s.PercentSpent,
		s.Remaining.StringFixed(2), s.Unallocated.StringFixed(2))

	for _, cs := range p.Budget.CategorySpends() {
		fmt.Printf("  %s: %s spent of %s\n", cs.Category.Name, cs.Spent.StringFixed(2), cs.Category.Allocated.StringFixed(2))
	}

	alerts := p.Budget.Alerts()
	if len(alerts) == 0 {
		return
	}
	fmt.Println("\n⚠️  Alerts:")
	for _, a := range alerts {
		fmt.Printf("  [%s] %s: %s spent of %s\n", a.Severity, a.CategoryName, a.Spent.StringFixed(2), a.Allocated.StringFixed(2))
	}
}

func addCategory(scanner *bufio.Scanner, p *planner.Planner) {
	name, ok := prompt(scanner, "Category name: ")
	if !ok || name == "" {
		return
	}
	amountStr, ok := prompt(scanner, "Allocated amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Printf("❌ Invalid amount: %v\n", err)
		return
	}

	c, err := p.Budget.AddCategory(name, amount)
	if err != nil {
		fmt.Printf("❌ Error adding category: %v\n", err)
		return
	}
	fmt.Printf("✅ Added category %s with allocation %s\n", c.Name, c.Allocated.StringFixed(2))
}

func addExpense(scanner *bufio.Scanner, p *planner.Planner) {
	categories := p.Budget.Categories()
	if len(categories) == 0 {
		fmt.Println("Add a budget category first.")
		return
	}
	for i, c := range categories {
		fmt.Printf("  %d. %s\n", i+1, c.Name)
	}
	idxStr, ok := prompt(scanner, "Category number: ")
	if !ok {
		return
	}
	idx := 0
	fmt.Sscanf(idxStr, "%d", &idx)
	if idx < 1 || idx > len(categories) {
		fmt.Println("Invalid choice.")
		return
	}

	desc, ok := prompt(scanner, "Description: ")
	if !ok {
		return
	}
	amountStr, ok := prompt(scanner, "Amount: ")
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Printf("❌ Invalid amount: %v\n", err)
		return
	}

	e, err := p.Budget.AddExpense(budget.ExpenseInput{
		CategoryID:  categories[idx-1].ID,
		Description: desc,
		Amount:      amount,
	})
	if err != nil {
		fmt.Printf("❌ Error adding expense: %v\n", err)
		return
	}
	fmt.Printf("✅ Recorded %s (%s)\n", e.Description, e.Amount.StringFixed(2))
}

func toggleFavorite(scanner *bufio.Scanner, p *planner.Planner) {
	handle, ok := prompt(scanner, "Vendor handle: ")
	if !ok || handle == "" {
		return
	}
	list, err := p.ToggleFavorite(handle)
	if err != nil {
		fmt.Printf("❌ Error toggling favorite: %v\n", err)
		return
	}
	fmt.Printf("✅ You now have %d favorite(s)\n", len(list))
}

func requestQuote(scanner *bufio.Scanner, p *planner.Planner) {
	handle, ok := prompt(scanner, "Vendor handle: ")
	if !ok || handle == "" {
		return
	}
	name, ok := prompt(scanner, "Vendor name: ")
	if !ok {
		return
	}
	category, ok := prompt(scanner, "Category: ")
	if !ok {
		return
	}
	budgetNote, ok := prompt(scanner, "Budget (free form): ")
	if !ok {
		return
	}

	err := p.RequestQuote(context.Background(), models.QuotationInput{
		VendorHandle: handle,
		VendorName:   name,
		Category:     category,
		Budget:       budgetNote,
	})
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Println("✅ Quote request sent!")
}

func markInvited(scanner *bufio.Scanner, p *planner.Planner) {
	guests := p.GuestList()
	if len(guests) == 0 {
		fmt.Println("\nNo guests found.")
		return
	}
	for i, g := range guests {
		fmt.Printf("  %d. %s (%s)\n", i+1, g.Name, g.RSVPStatus)
	}
	idxStr, ok := prompt(scanner, "Guest number: ")
	if !ok {
		return
	}
	idx := 0
	fmt.Sscanf(idxStr, "%d", &idx)
	if idx < 1 || idx > len(guests) {
		fmt.Println("Invalid choice.")
		return
	}

	g, err := p.Guests.MarkInvited(guests[idx-1].ID)
	if err != nil {
		fmt.Printf("❌ Error marking invited: %v\n", err)
		return
	}
	p.RefreshGuests()
	fmt.Printf("✅ %s is now %s\n", g.Name, g.RSVPStatus)
}

func setTotalBudget(scanner *bufio.Scanner, p *planner.Planner) {
	amountStr, ok := prompt(scanner, "Total budget: ")
	if !ok || amountStr == "" {
		return
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Printf("❌ Invalid amount: %v\n", err)
		return
	}
	if err := p.Budget.SetTotalBudget(amount); err != nil {
		fmt.Printf("❌ Error setting budget: %v\n", err)
		return
	}
	fmt.Printf("✅ Total budget set to %s\n", amount.StringFixed(2))
}

func viewBookings(p *planner.Planner) {
	bookings := p.Bookings.List()
	if len(bookings) == 0 {
		fmt.Println("\nNo booking requests yet.")
		return
	}

	fmt.Printf("\n📅 Booking requests (%d):\n", len(bookings))
	for _, b := range bookings {
		fmt.Printf("  %s — %s %s [%s]\n", b.VendorID, b.Date.Format("2006-01-02"), b.Slot, b.Status)
	}
}

func exportGuests(scanner *bufio.Scanner, p *planner.Planner) {
	format, ok := prompt(scanner, "Format (csv/pdf): ")
	if !ok {
		return
	}
	if strings.EqualFold(format, "pdf") {
		path := "guests-export.pdf"
		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("❌ Failed to create %s: %v\n", path, err)
			return
		}
		defer f.Close()
		if err := p.Guests.ExportPDF(f, false); err != nil {
			fmt.Printf("❌ Export failed: %v\n", err)
			return
		}
		fmt.Printf("✅ Wrote %s\n", path)
		return
	}

	csvData, err := p.Guests.ExportCSV(false)
	if err != nil {
		fmt.Printf("❌ Export failed: %v\n", err)
		return
	}
	path := "guests-export.csv"
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		fmt.Printf("❌ Failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("✅ Wrote %s\n", path)
}

func exportBudget(scanner *bufio.Scanner, p *planner.Planner) {
	format, ok := prompt(scanner, "Format (csv/pdf): ")
	if !ok {
		return
	}
	if strings.EqualFold(format, "pdf") {
		path := "budget-export.pdf"
		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("❌ Failed to create %s: %v\n", path, err)
			return
		}
		defer f.Close()
		if err := p.Budget.ExportPDF(f); err != nil {
			fmt.Printf("❌ Export failed: %v\n", err)
			return
		}
		fmt.Printf("✅ Wrote %s\n", path)
		return
	}

	csvData, err := p.Budget.ExportCSV()
	if err != nil {
		fmt.Printf("❌ Export failed: %v\n", err)
		return
	}
	path := "budget-export.csv"
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		fmt.Printf("❌ Failed to write %s: %v\n", path, err)
		return
	}
	fmt.Printf("✅ Wrote %s\n", path)
}

func viewWeddingInfo(scanner *bufio.Scanner, p *planner.Planner) {
	info := p.WeddingInfo()
	if info.WeddingDate.IsZero() {
		fmt.Println("\nNo wedding info set yet.")
	} else {
		fmt.Printf("\n%s & %s — %s at %s\n", info.Partner1, info.Partner2,
			info.WeddingDate.Format("January 2, 2006"), info.Location)
		fmt.Printf("⏳ %d day(s) to go!\n", p.DaysUntilWedding(time.Now()))
	}

	answer, ok := prompt(scanner, "Update wedding info? (y/N): ")
	if !ok || strings.ToLower(answer) != "y" {
		return
	}
	p1, ok := prompt(scanner, "Partner 1: ")
	if !ok {
		return
	}
	p2, ok := prompt(scanner, "Partner 2: ")
	if !ok {
		return
	}
	dateStr, ok := prompt(scanner, "Wedding date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		fmt.Printf("❌ Invalid date: %v\n", err)
		return
	}
	location, ok := prompt(scanner, "Location: ")
	if !ok {
		return
	}

	err = p.SetWeddingInfo(models.WeddingInfo{
		Partner1:    p1,
		Partner2:    p2,
		WeddingDate: date,
		Location:    location,
	})
	if err != nil {
		fmt.Printf("❌ Error saving wedding info: %v\n", err)
		return
	}
	fmt.Println("✅ Wedding info saved!")
}

func syncBackend(p *planner.Planner) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.Sync(ctx); err != nil {
		fmt.Printf("❌ Sync failed: %v\n", err)
		return
	}
	fmt.Printf("✅ Synced. Catalog has %d vendor(s), %d favorite(s) resolved.\n",
		len(p.Catalog()), len(p.FavoriteVendors()))
}

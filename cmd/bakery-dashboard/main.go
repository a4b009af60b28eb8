// Command bakery-dashboard is the terminal staff dashboard: it polls the
// orders API on a fixed interval and renders the pending queue, with
// commands to complete, delete, and print orders.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/forno-rosati/bakery-orders-service/internal/dashboard"
	"github.com/forno-rosati/bakery-orders-service/internal/client"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "orders service base URL")
	interval := flag.Duration("interval", dashboard.DefaultPollInterval, "poll interval")
	flag.Parse()

	logger := logrus.WithField("service", "bakery-dashboard")

	api, err := client.New(*addr)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create API client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	password := os.Getenv("STAFF_PASSWORD")
	if password == "" {
		fmt.Print("Password staff: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		password = strings.TrimSpace(line)
	}

	if err := api.Login(ctx, password); err != nil {
		logger.WithError(err).Fatal("Login failed")
	}

	poller := dashboard.NewPoller(api, *interval, logger)
	go poller.Run(ctx)

	go func() {
		for snap := range poller.Updates() {
			queue := dashboard.SortByPickupTime(dashboard.Pending(snap.Orders))
			fmt.Printf("\n--- %s ---\n", snap.FetchedAt.Format("15:04:05"))
			fmt.Print(dashboard.RenderSummary(queue))
			fmt.Print("> ")
		}
	}()

	fmt.Println("Comandi: done <id> | rm <id> | print <id> | all | quit")
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if !handleCommand(ctx, api, scanner.Text()) {
			break
		}
		fmt.Print("> ")
	}

	// Cancelling the context abandons any in-flight poll cleanly.
	cancel()
}

func handleCommand(ctx context.Context, api *client.Client, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmdCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch fields[0] {
	case "quit", "exit":
		return false
	case "all":
		orders, err := api.ListOrders(cmdCtx)
		if err != nil {
			fmt.Println("Errore:", err)
			return true
		}
		fmt.Print(dashboard.RenderSummary(orders))
	case "done", "rm", "print":
		if len(fields) != 2 {
			fmt.Println("Uso:", fields[0], "<id>")
			return true
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Println("ID non valido")
			return true
		}
		switch fields[0] {
		case "done":
			if _, err := api.MarkCompleted(cmdCtx, id); err != nil {
				fmt.Println("Errore aggiornamento:", err)
			}
		case "rm":
			if _, err := api.DeleteOrder(cmdCtx, id); err != nil {
				fmt.Println("Errore eliminazione:", err)
			}
		case "print":
			orders, err := api.ListOrders(cmdCtx)
			if err != nil {
				fmt.Println("Errore:", err)
				return true
			}
			for _, o := range orders {
				if o.ID == id {
					fmt.Print(dashboard.RenderTicket(o))
					return true
				}
			}
			fmt.Println("Ordine non trovato")
		}
	default:
		fmt.Println("Comando sconosciuto:", fields[0])
	}

	return true
}

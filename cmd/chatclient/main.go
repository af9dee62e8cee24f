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

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"chatboard/broadcast"
	"chatboard/client"
	"chatboard/domain"
	"chatboard/internal"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the client lifecycle: configuration, the one-time name
// prompt, the broadcast subscription and the read-send loop.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect the broadcast channel.
	rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	defer func() { _ = rdb.Close() }()
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return exitRuntime, fmt.Errorf("redis unreachable at %s: %w", config.RedisAddr, err)
	}
	notifier := broadcast.NewRedisNotifier(rdb, log)

	// 4. Build the chat client and fix the display name. The prompt
	// repeats until a non-blank name is given, like the UI dialog that
	// cannot be dismissed empty.
	stdin := bufio.NewScanner(os.Stdin)
	c := client.New(config.ServerURL, config.APIToken, notifier, log)
	username := strings.TrimSpace(config.Username)
	for username == "" {
		fmt.Print("Your name: ")
		if !stdin.Scan() {
			return exitOK, nil
		}
		username = strings.TrimSpace(stdin.Text())
	}
	if err := c.SetUsername(username); err != nil {
		return exitConfig, err
	}

	// 5. Render on every successful refresh, then load the backlog and
	// start listening for change notifications.
	c.OnUpdate(func(messages []domain.Message) {
		render(messages, username, config.HistorySize)
	})
	if err := c.Refresh(ctx); err != nil {
		log.Error("Initial refresh failed", "error", err)
	}
	if err := c.Subscribe(ctx); err != nil {
		return exitRuntime, fmt.Errorf("subscribing to broadcast channel: %w", err)
	}

	fmt.Printf(">>> Chatting as %s (Ctrl+C to quit)\n", username)

	// 6. Read-send loop. Stdin lines arrive on a channel so Ctrl+C is
	// honored even while the terminal sits idle.
	lines := make(chan string)
	go func() {
		defer close(lines)
		for stdin.Scan() {
			lines <- stdin.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nLeaving chat...")
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := c.Send(ctx, line); err != nil {
				log.Error("Send failed", "error", err)
			}
		}
	}
}

// render prints the tail of the board oldest-first, own messages
// highlighted. The list arrives newest-first from the server.
func render(messages []domain.Message, username string, historySize int) {
	start := len(messages) - 1
	if historySize > 0 && len(messages) > historySize {
		start = historySize - 1
	}
	fmt.Println(strings.Repeat("-", 40))
	for i := start; i >= 0; i-- {
		m := messages[i]
		stamp := time.UnixMilli(m.Timestamp).Format(time.TimeOnly)
		name := color.New(color.FgCyan).Render(m.Username)
		if m.Username == username {
			name = color.New(color.FgGreen).Render(m.Username)
		}
		fmt.Printf("[%s] %s: %s\n", stamp, name, m.Text)
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	targetKey      = "target"
	requestsKey    = "requests"
	concurrencyKey = "concurrency"
	deltaKey       = "delta"
)

func main() {
	cmd := &cli.Command{
		Name:  "reactor-load",
		Usage: "Hammer a running reactorctl serve instance's /tick endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  targetKey,
				Usage: "base URL of the collaborator server",
				Value: "http://localhost:4173",
			},
			&cli.UintFlag{
				Name:  requestsKey,
				Usage: "total number of POST /tick requests to send",
				Value: 1000,
			},
			&cli.UintFlag{
				Name:    concurrencyKey,
				Aliases: []string{"c"},
				Usage:   "number of concurrent workers",
				Value:   10,
			},
			&cli.IntFlag{
				Name:  deltaKey,
				Usage: "delta sent in each tick body",
				Value: 1,
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	target := cmd.String(targetKey)
	total := int(cmd.Uint(requestsKey))
	workers := int(cmd.Uint(concurrencyKey))
	delta := cmd.Int(deltaKey)

	if workers <= 0 {
		workers = 1
	}
	if total <= 0 {
		total = 1
	}

	body, err := json.Marshal(map[string]int{"delta": int(delta)})
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	url := target + "/tick"

	var (
		sent   int64
		failed int64
		wg     sync.WaitGroup
		jobs   = make(chan struct{}, total)
		start  = time.Now()
	)
	for i := 0; i < total; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				resp, err := client.Post(url, "application/json", bytes.NewReader(body))
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				resp.Body.Close()
				if resp.StatusCode >= 400 {
					atomic.AddInt64(&failed, 1)
				} else {
					atomic.AddInt64(&sent, 1)
				}
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("sent:     %d\n", sent)
	fmt.Printf("failed:   %d\n", failed)
	fmt.Printf("elapsed:  %s\n", elapsed)
	fmt.Printf("rate:     %.1f req/s\n", float64(sent)/elapsed.Seconds())

	return nil
}

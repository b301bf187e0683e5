package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/marketplace/config"
	"github.com/niksmo/marketplace/internal/adapter"
	"github.com/niksmo/marketplace/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

const (
	partitions        = 3
	replicationFactor = 3
	cleanupDelete     = "delete"
	cleanupCompact    = "compact"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()

	cl, err := createClient(cfg)
	if err != nil {
		printFail(err)
		return
	}
	defer cl.Close()

	topics := cfg.Broker.Topics
	summaryTable := toGroupTable(cfg.Broker.Consumers.BidSummaryGroup)

	printStart(topics.OrderShipped, topics.BidsPlaced, summaryTable)
	defer printComplete(time.Now())

	// event streams
	err = makeTopics(
		sigCtx, cl, cleanupDelete,
		topics.OrderShipped,
		topics.BidsPlaced,
	)
	if err != nil {
		printFail(err)
		return
	}

	// group table of the bid summary processor
	err = makeTopics(sigCtx, cl, cleanupCompact, summaryTable)
	if err != nil {
		printFail(err)
		return
	}
}

func createClient(cfg config.Config) (*kadm.Client, error) {
	brokerCfg := cfg.Broker
	opts := []kgo.Opt{kgo.SeedBrokers(brokerCfg.SeedBrokers...)}

	if brokerCfg.TLS.Enabled() {
		tlsCfg, err := adapter.MakeTLSConfig(
			brokerCfg.TLS.CA, brokerCfg.TLS.Cert, brokerCfg.TLS.Key,
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kgo.DialTLSConfig(tlsCfg))
	}

	if brokerCfg.SASL.User != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: brokerCfg.SASL.User,
			Pass: brokerCfg.SASL.Pass,
		}.AsMechanism()))
	}

	return kadm.NewOptClient(opts...)
}

func makeTopics(
	ctx context.Context, cl *kadm.Client, cleanupPolicy string, topics ...string,
) error {
	minISR := "2"

	config := map[string]*string{
		"cleanup.policy":      &cleanupPolicy,
		"min.insync.replicas": &minISR,
	}

	responses, err := cl.CreateTopics(
		ctx,
		partitions,
		replicationFactor,
		config,
		topics...,
	)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range responses.Sorted() {
		if res.Err != nil {
			if errors.Is(res.Err, kerr.TopicAlreadyExists) {
				fmt.Printf("topic: %q already exists\n", res.Topic)
			} else {
				errs = append(errs, fmt.Errorf("%s: %w", res.Topic, res.Err))
			}
			continue
		}
		fmt.Printf("topic: %q successfully created\n", res.Topic)
	}

	return errors.Join(errs...)
}

func printStart(topics ...string) {
	fmt.Println("initializing topics...")
	for _, t := range topics {
		fmt.Printf("\t- %q\n", t)
	}
	fmt.Println()
}

func printComplete(start time.Time) {
	fmt.Printf("\ncomplete in %s\n", time.Since(start))
}

func printFail(err error) {
	fmt.Printf("failed to create topics: \n%s\n", err)
}

func toGroupTable(group string) string {
	return string(goka.GroupTable(goka.Group(group)))
}

// Package kafka publishes storefront events and aggregates
// product popularity from them.
package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/IBM/sarama"
	"github.com/lovoo/goka"
	"github.com/niksmo/visionframe/internal/core/domain"
	"github.com/niksmo/visionframe/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

// A Security holds optional transport security of broker connections.
//
// TLS is used when TLSConfig is not nil, SASL/PLAIN when User is set.
type Security struct {
	TLSConfig *tls.Config
	User      string
	Pass      string
}

func (s Security) kgoOpts() []kgo.Opt {
	var opts []kgo.Opt
	if s.TLSConfig != nil {
		opts = append(opts, kgo.DialTLSConfig(s.TLSConfig))
	}
	if s.User != "" {
		opts = append(opts, kgo.SASL(
			plain.Auth{User: s.User, Pass: s.Pass}.AsMechanism(),
		))
	}
	return opts
}

// applySASLTLS configures goka clients, which share one global config.
func applySASLTLS(s Security) {
	cfg := goka.DefaultConfig()
	if s.TLSConfig != nil {
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = s.TLSConfig
	}
	if s.User != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = s.User
		cfg.Net.SASL.Password = s.Pass
	}
	goka.ReplaceGlobalConfig(cfg)
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl            ProducerClient
	favoriteSerde Encoder
	searchSerde   Encoder
	favoriteTopic string
	searchTopic   string
}

// ProducerClientOpt creates the client and checks that
// the seed brokers are reachable.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, sec Security,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		}
		kopts = append(kopts, sec.kgoOpts()...)

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerFavoriteEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("favorite events topic is empty string")
		}
		if encoder == nil {
			return errors.New("favorite events encoder is nil")
		}
		opts.favoriteTopic = topic
		opts.favoriteSerde = encoder
		return nil
	}
}

func ProducerSearchEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("search events topic is empty string")
		}
		if encoder == nil {
			return errors.New("search events encoder is nil")
		}
		opts.searchTopic = topic
		opts.searchSerde = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func withNonlogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func favoriteEventToSchemaV1(
	v domain.FavoriteEvent,
) (s schema.FavoriteEventV1) {
	s.EventID = v.EventID
	s.ProductID = v.ProductID
	s.Favorited = v.Favorited
	s.OccurredAt = v.OccurredAt.UTC()
	return
}

func searchEventToSchemaV1(v domain.SearchEvent) (s schema.SearchEventV1) {
	s.EventID = v.EventID
	s.Query = v.Query
	s.Results = v.Results
	s.OccurredAt = v.OccurredAt.UTC()
	return
}

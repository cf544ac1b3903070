package metrics

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "ChordGen/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
	environmentProduction    = "production"

	// InvalidQuality labels every rejected chord
	InvalidQuality = "invalid"
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client.
// Outside production it returns a disabled client that drops every metric.
func NewClient(ctx context.Context, environment string) (*Client, error) {
	if environment != environmentProduction {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are actually sent.
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{
				Name:  aws.String("Endpoint"),
				Value: aws.String(endpoint),
			},
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordChordGeneration counts a spelled chord per quality and outcome
func (m *Client) RecordChordGeneration(quality string, extensions int, success bool) {
	if !m.Enabled() {
		return
	}

	dimensions := chordDimensions(quality, success, m.environment)
	go func() {
		ctx := context.Background()
		if err := m.putMetric(ctx, "ChordsGenerated", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record ChordsGenerated metric: %v", err)
		}

		if extensions > 0 {
			if err := m.putMetric(ctx, "ChordExtensions", float64(extensions), types.StandardUnitCount, dimensions); err != nil {
				log.Printf("Failed to record ChordExtensions metric: %v", err)
			}
		}
	}()
}

// chordDimensions folds every failed chord into one "invalid" series so
// client input never mints new metrics
func chordDimensions(quality string, success bool, environment string) []types.Dimension {
	if !success || quality == "" {
		quality = InvalidQuality
	}
	return []types.Dimension{
		{
			Name:  aws.String("Quality"),
			Value: aws.String(strings.ToLower(quality)),
		},
		{
			Name:  aws.String("Success"),
			Value: aws.String(strconv.FormatBool(success)),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(environment),
		},
	}
}

// RecordMIDIExport records the size of a rendered MIDI file
func (m *Client) RecordMIDIExport(size int) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, "MIDIExportBytes", float64(size), types.StandardUnitBytes, dimensions); err != nil {
			log.Printf("Failed to record MIDIExportBytes metric: %v", err)
		}
	}()
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	_ context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}

// Package s3 provides functional options for configuring the S3 provider.
package s3

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Config holds configuration for the S3 provider.
type Config struct {
	// Region is the AWS region to use; empty means the credential chain's
	// region, falling back to us-east-1
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible services
	Endpoint string

	// ForcePathStyle uses path-style addressing instead of virtual-hosted
	ForcePathStyle bool

	// MaxRetries is the SDK's maximum attempt count per request
	MaxRetries int

	// HTTPTimeout bounds each HTTP request; zero means no timeout
	HTTPTimeout time.Duration

	// AWSConfig replaces the default credential chain entirely
	AWSConfig *aws.Config
}

// Option configures the S3 provider.
type Option func(*Config)

// WithRegion sets the AWS region for the provider.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint overrides the S3 endpoint URL. Use this for S3-compatible
// services like LocalStack or MinIO.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle enables path-style bucket addressing. Most
// S3-compatible endpoints require this.
func WithForcePathStyle(force bool) Option {
	return func(c *Config) {
		c.ForcePathStyle = force
	}
}

// WithMaxRetries sets the maximum number of attempts per API request.
func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		if retries > 0 {
			c.MaxRetries = retries
		}
	}
}

// WithHTTPTimeout bounds each HTTP request made by the provider.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.HTTPTimeout = timeout
		}
	}
}

// WithAWSConfig supplies a pre-built AWS configuration, bypassing the
// default credential chain. Region and retry options still apply on top.
func WithAWSConfig(cfg aws.Config) Option {
	return func(c *Config) {
		c.AWSConfig = &cfg
	}
}

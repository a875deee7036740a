// Package connfile resolves the MongoDB connection configuration from a
// single-line connection file or the environment, and builds the client.
package connfile

import (
	"bufio"
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// EnvURI overrides the connection file when set.
const EnvURI = "MONGODB_URI"

const pingTimeout = 10 * time.Second

// Config is the resolved connection configuration, immutable for the
// process lifetime.
type Config struct {
	URI      string
	Database string
	// InsecureTLS reports that the URI disables certificate and
	// hostname verification (tlsInsecure/tlsAllowInvalidCertificates).
	InsecureTLS bool
}

// Load resolves the connection URI from the MONGODB_URI environment
// variable or, when unset, from the first line of the file at path.
// The database name must be present as the URI path segment.
func Load(path string) (Config, error) {
	uri := strings.TrimSpace(os.Getenv(EnvURI))
	if uri == "" {
		data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
		if err != nil {
			return Config{}, fmt.Errorf("failed to read connection file %s: %w", path, err)
		}
		uri = firstLine(string(data))
		if uri == "" {
			return Config{}, fmt.Errorf("connection file %s is empty", path)
		}
	}
	return Parse(uri)
}

// Parse validates the URI and extracts the database name and TLS mode.
func Parse(uri string) (Config, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return Config{}, fmt.Errorf("could not parse connection string: %w", err)
	}
	if cs.Database == "" {
		return Config{}, fmt.Errorf("no database name found in URI: ensure it ends with /yourDbName")
	}
	return Config{
		URI:         uri,
		Database:    cs.Database,
		InsecureTLS: insecureTLS(uri, cs),
	}, nil
}

// insecureTLS reports whether the URI disables certificate validation.
// connstring maps only sslInsecure/tlsInsecure onto SSLInsecure, so the
// tlsAllowInvalidCertificates option has to be matched on the URI text.
func insecureTLS(uri string, cs *connstring.ConnString) bool {
	return cs.SSLInsecure || strings.Contains(strings.ToLower(uri), "tlsallowinvalidcertificates=true")
}

func firstLine(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

// Connect builds the client and verifies the connection with a ping.
// When cfg.InsecureTLS is set the client trusts any server certificate
// and hostname; callers must surface a visible warning to the operator.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.InsecureTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true}) // #nosec G402 -- explicit opt-in via URI option
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

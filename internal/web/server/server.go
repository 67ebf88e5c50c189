// Package server runs the units HTTP API with production timeouts and
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Server wraps http.Server with the listener it was started on.
type Server struct {
	httpServer *http.Server
	config     *Config
	listener   net.Listener
}

// Config holds server configuration
type Config struct {
	// Address is the server listen address (e.g., "localhost:8089")
	Address string

	// Handler is the HTTP handler for the server
	Handler http.Handler

	// Timeouts
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration

	// Connection limits
	MaxHeaderBytes int

	// Database is the custom-unit store's pool, tuned on New when set.
	Database *DatabaseConfig
}

// DatabaseConfig holds database connection pool configuration
type DatabaseConfig struct {
	DB              *sql.DB
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a production-ready server configuration
func DefaultConfig(handler http.Handler) *Config {
	return &Config{
		Address:           "localhost:8089",
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}
}

// DefaultDatabaseConfig returns pool settings for a SQLite file. SQLite
// serializes writers, so a handful of connections is plenty.
func DefaultDatabaseConfig(db *sql.DB) *DatabaseConfig {
	return &DatabaseConfig{
		DB:              db,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}

// New creates a new server instance
func New(config *Config) (*Server, error) {
	if config == nil {
		return nil, fmt.Errorf("server config cannot be nil")
	}
	if config.Handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}

	if config.Database != nil {
		if err := configureDatabasePool(config.Database); err != nil {
			return nil, fmt.Errorf("failed to configure database pool: %w", err)
		}
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              config.Address,
			Handler:           config.Handler,
			ReadTimeout:       config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			MaxHeaderBytes:    config.MaxHeaderBytes,
		},
		config: config,
	}, nil
}

// Listen binds the configured address. Calling it before Serve lets callers
// learn the real address when the port is 0.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener
	return nil
}

// Serve accepts connections until Shutdown or Close. It returns
// http.ErrServerClosed after a clean shutdown.
func (s *Server) Serve() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.httpServer.Serve(s.listener)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Close immediately closes the server
func (s *Server) Close() error {
	return s.httpServer.Close()
}

// Addr returns the server's network address
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Address
}

// configureDatabasePool configures the database connection pool
func configureDatabasePool(config *DatabaseConfig) error {
	if config.DB == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	config.DB.SetMaxOpenConns(config.MaxOpenConns)
	config.DB.SetMaxIdleConns(config.MaxIdleConns)
	config.DB.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := config.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package admin

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
	"github.com/sivanov/vaulty/models"
)

// session runs the Login -> Command state machine for one admin WebSocket
// connection, from upgrade through to close.
//
// writeMu serialises every outbound frame — ping, login response, and
// command responses alike — so none of them interleave on the wire.
// closing is set once the session decides to stop, letting the ping loop
// exit at its next tick instead of racing the read loop's own teardown.
type session struct {
	conn      *websocket.Conn
	services  *service.Services
	usersCfg  config.Users
	nodeName  string
	requester net.IP
	logger    *logger.Logger

	writeMu sync.Mutex
	closing atomic.Bool

	caller service.Caller
}

func newSession(conn *websocket.Conn, services *service.Services, usersCfg config.Users, nodeName string, requester net.IP, log *logger.Logger) *session {
	conn.SetReadLimit(models.MaxSecretSize)

	sessionLog := log.GetChildLogger()
	sessionLog.Logger = sessionLog.With().Str("session_ip", requester.String()).Logger()

	return &session{
		conn:      conn,
		services:  services,
		usersCfg:  usersCfg,
		nodeName:  nodeName,
		requester: requester,
		logger:    sessionLog,
	}
}

// run drives the session to completion and closes the connection on return.
func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	if !s.login(ctx) {
		return
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.pingLoop(stop)
	}()

	s.commandLoop(ctx)

	s.closing.Store(true)
	close(stop)
	wg.Wait()
}

// login reads exactly one frame, authenticates it via the user service, and
// answers with a Granted or Denied LoginResponse. A Denied outcome — bad
// credentials, SG mismatch, or a malformed first frame — is always preceded
// by the configured constant-time delay before the connection is closed, so
// the caller cannot distinguish "wrong password" from "wrong IP" from
// "internal error" by timing alone.
func (s *session) login(ctx context.Context) bool {
	_, raw, err := s.conn.ReadMessage()
	if err != nil {
		return false
	}

	var req models.LoginRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.logger.Warn().Err(err).Msg("malformed admin login frame")
		s.denyLogin(ctx)
		return false
	}

	outcome, err := s.services.Users.Login(ctx, s.requester, req.Username, req.Password)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("admin login failed")
		s.denyLogin(ctx)
		return false
	}

	if !outcome.Successful {
		s.denyLogin(ctx)
		return false
	}

	s.caller = service.Caller{Username: req.Username, Role: outcome.Role}

	nodeName := s.nodeName
	return s.writeJSON(models.LoginResponse{Result: "Granted", NodeName: &nodeName}) == nil
}

func (s *session) denyLogin(ctx context.Context) {
	authz.Delay(ctx, s.usersCfg.DelayUnsuccessfulAttemptsMillis)
	_ = s.writeJSON(models.LoginResponse{Result: "Denied"})
}

// commandLoop reads and answers admin command frames in order until the
// peer disconnects. A failure to parse or execute a single command never
// ends the session; only a read or write error on the socket itself does.
func (s *session) commandLoop(ctx context.Context) {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd models.AdminCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			if s.writeJSON(models.ErrorFrame{Error: err.Error()}) != nil {
				return
			}
			continue
		}

		response, err := s.dispatch(ctx, cmd)
		if err != nil {
			if s.writeJSON(models.ErrorFrame{Error: err.Error()}) != nil {
				return
			}
			continue
		}

		if s.writeJSON(response) != nil {
			return
		}
	}
}

// pingLoop sends a WebSocket ping every config.PingInterval until stop is
// closed or a ping write fails. A failed ping does not itself close the
// connection; the next read in commandLoop will fail and unwind the session.
func (s *session) pingLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if s.closing.Load() {
				return
			}

			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(config.PingInterval))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

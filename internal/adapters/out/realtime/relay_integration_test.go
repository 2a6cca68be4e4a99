package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courierhub/internal/adapters/out/realtime"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// RedisRelayIntegrationTestSuite runs two hubs joined through one Redis.
type RedisRelayIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (suite *RedisRelayIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)
	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *RedisRelayIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisRelayIntegrationTestSuite) TestPublish_ReachesViewerOnAnotherInstance() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisherHub := realtime.NewHub(zap.NewNop())
	publisher := realtime.NewRedisRelay(suite.client, publisherHub, zap.NewNop())

	viewerHub := realtime.NewHub(zap.NewNop())
	viewerRelay := realtime.NewRedisRelay(suite.client, viewerHub, zap.NewNop())
	go func() { _ = viewerRelay.Run(ctx) }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = viewerHub.Serve(w, r, nil)
	}))
	defer srv.Close()
	defer viewerHub.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	suite.Require().NoError(err)
	defer conn.Close()

	companyID := kernel.NewUUID()
	suite.Require().NoError(conn.WriteJSON(map[string]string{"event": "joinCompany", "companyId": companyID.String()}))
	suite.Require().Eventually(func() bool {
		return len(viewerHub.Registry().Members(realtime.RoomName(companyID))) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// the subscription is asynchronous; publish until the viewer hears it
	received := make(chan realtime.Envelope, 1)
	go func() {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, data, readErr := conn.ReadMessage()
		if readErr != nil {
			return
		}
		var env realtime.Envelope
		if json.Unmarshal(data, &env) == nil {
			received <- env
		}
	}()

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		suite.Require().NoError(publisher.Publish(ctx, companyID, ports.EventUpdateOrder, map[string]string{"id": "7"}))
		select {
		case env := <-received:
			suite.Equal("updateOrder", env.Type)
			suite.Equal(realtime.RoomName(companyID), env.Room)
			return
		case <-deadline:
			suite.FailNow("relayed event not received")
		case <-ticker.C:
		}
	}
}

func TestRedisRelayIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRelayIntegrationTestSuite))
}

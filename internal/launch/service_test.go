package launch

import (
  "bytes"
  "errors"
  "io"
  "log"
  "strings"
  "sync"
  "syscall"
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "game-agent/internal/config"
)

const testLauncher = "/opt/steam/steam"

func newTestService(spawner Spawner) (*Service, *bytes.Buffer) {
  var buf bytes.Buffer
  cfg := config.LauncherConfig{Path: testLauncher, Scheme: "steam://", MaxAppIDLength: 32}
  return NewService(cfg, spawner, log.New(&buf, "", 0)), &buf
}

func TestHandleRequest_Spawns(t *testing.T) {
  spawner := &fakeSpawner{}
  svc, logs := newTestService(spawner)

  for _, id := range []string{"730", "440", "0"} {
    appID, err := svc.HandleRequest(strings.NewReader(`{"app_id":"` + id + `"}`))
    require.NoError(t, err)
    assert.Equal(t, id, appID)
  }

  calls := spawner.Calls()
  require.Len(t, calls, 3)
  assert.Equal(t, spawnCall{Path: testLauncher, Args: []string{"steam://run/730"}}, calls[0])
  assert.Equal(t, spawnCall{Path: testLauncher, Args: []string{"steam://run/440"}}, calls[1])
  assert.Equal(t, spawnCall{Path: testLauncher, Args: []string{"steam://run/0"}}, calls[2])
  assert.Contains(t, logs.String(), "launch: received")
  assert.Contains(t, logs.String(), "app_id=730")
}

func TestHandleRequest_InvalidDoesNotSpawn(t *testing.T) {
  spawner := &fakeSpawner{}
  svc, logs := newTestService(spawner)

  for _, body := range []string{``, `{}`, `{"app_id":""}`, `{"app_id":"123;rm -rf /"}`, `{"app_id":"7 30"}`, `{"app_id":"0x1A"}`} {
    _, err := svc.HandleRequest(strings.NewReader(body))
    require.Error(t, err, body)
    assert.True(t, IsClientError(err), body)
  }

  assert.Empty(t, spawner.Calls())
  assert.Contains(t, logs.String(), "launch: rejected")
}

func TestHandleRequest_SpawnFailure(t *testing.T) {
  spawner := &fakeSpawner{err: syscall.ENOENT}
  svc, logs := newTestService(spawner)

  appID, err := svc.HandleRequest(strings.NewReader(`{"app_id":"730"}`))
  require.Error(t, err)
  assert.Equal(t, "730", appID)
  assert.ErrorIs(t, err, ErrSpawnFailure)
  assert.ErrorIs(t, err, syscall.ENOENT)
  assert.False(t, IsClientError(err))
  assert.Equal(t, "An internal error occurred.", ErrorMessage(err))
  assert.Contains(t, logs.String(), "spawn failed")
  assert.Contains(t, logs.String(), "app_id=730")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
  return 0, errors.New("connection reset by peer")
}

func TestHandleRequest_UnreadableBody(t *testing.T) {
  tests := []struct {
    name string
    body io.Reader
  }{
    {name: "nil reader", body: nil},
    {name: "read error", body: failingReader{}},
    {name: "oversized", body: strings.NewReader(`{"app_id":"730","pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`)},
  }

  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      spawner := &fakeSpawner{}
      svc, logs := newTestService(spawner)

      appID, err := svc.HandleRequest(tt.body)
      require.Error(t, err)
      assert.ErrorIs(t, err, ErrMissingBody)
      assert.Empty(t, appID)
      assert.Empty(t, spawner.Calls())
      assert.Regexp(t, `launch: rejected launch_id=[0-9a-f-]{36} reason=missing_body`, logs.String())
    })
  }
}

func TestLaunchAppID(t *testing.T) {
  spawner := &fakeSpawner{}
  svc, _ := newTestService(spawner)

  require.NoError(t, svc.LaunchAppID("570"))
  assert.ErrorIs(t, svc.LaunchAppID(""), ErrMissingField)
  assert.ErrorIs(t, svc.LaunchAppID("570 && reboot"), ErrInvalidFormat)

  calls := spawner.Calls()
  require.Len(t, calls, 1)
  assert.Equal(t, []string{"steam://run/570"}, calls[0].Args)
}

func TestHandleRequest_ConcurrentIdenticalRequests(t *testing.T) {
  spawner := &fakeSpawner{}
  svc, _ := newTestService(spawner)

  const n = 20
  var wg sync.WaitGroup
  errs := make(chan error, n)
  for i := 0; i < n; i++ {
    wg.Add(1)
    go func() {
      defer wg.Done()
      _, err := svc.HandleRequest(strings.NewReader(`{"app_id":"730"}`))
      errs <- err
    }()
  }
  wg.Wait()
  close(errs)

  for err := range errs {
    assert.NoError(t, err)
  }
  assert.Len(t, spawner.Calls(), n)
}

func TestNewService_DefaultsToSystemSpawner(t *testing.T) {
  svc := NewService(config.LauncherConfig{Path: testLauncher}, nil, log.New(&bytes.Buffer{}, "", 0))
  _, ok := svc.spawner.(SystemSpawner)
  assert.True(t, ok)
}

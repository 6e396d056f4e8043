package launch

import (
  "sync"
)

type spawnCall struct {
  Path string
  Args []string
}

type fakeSpawner struct {
  mu sync.Mutex
  calls []spawnCall
  err error
}

func (f *fakeSpawner) Spawn(path string, args []string) (int, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  f.calls = append(f.calls, spawnCall{Path: path, Args: append([]string(nil), args...)})
  if f.err != nil {
    return 0, f.err
  }
  return 4242, nil
}

func (f *fakeSpawner) Calls() []spawnCall {
  f.mu.Lock()
  defer f.mu.Unlock()
  return append([]spawnCall(nil), f.calls...)
}

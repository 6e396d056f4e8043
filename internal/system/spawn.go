package system

import (
  "errors"
  "fmt"
  "os"
  "os/exec"
)

// SpawnDetached starts name with args in its own process group and returns
// its pid without waiting for it. The child gets env as its environment, or
// the agent's environment when env is nil. Its stdio is /dev/null.
func SpawnDetached(name string, args []string, env []string) (int, error) {
  cmd := exec.Command(name, args...)
  if env == nil {
    env = os.Environ()
  }
  cmd.Env = env
  cmd.SysProcAttr = detachedProcAttr()

  if err := cmd.Start(); err != nil {
    return 0, fmt.Errorf("%s failed to start: %w", name, err)
  }
  pid := cmd.Process.Pid

  // Reap only; the exit status is intentionally discarded.
  go func() {
    _ = cmd.Wait()
  }()
  return pid, nil
}

// CheckExecutable reports whether path names a regular file with an
// executable bit set.
func CheckExecutable(path string) error {
  info, err := os.Stat(path)
  if err != nil {
    return err
  }
  if info.IsDir() {
    return fmt.Errorf("%s is a directory", path)
  }
  if info.Mode().Perm()&0111 == 0 {
    return errors.New(path + " is not executable")
  }
  return nil
}

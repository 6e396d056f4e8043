//go:build !unix

package system

import "syscall"

func detachedProcAttr() *syscall.SysProcAttr {
  return nil
}

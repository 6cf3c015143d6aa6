//go:build !linux

package filehash

import "os"

func adviseSequential(*os.File) {}

package portprobe

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// procProber finds a PID's listening port by cross-referencing
// /proc/<pid>/fd socket inodes against the LISTEN rows of
// /proc/net/tcp and /proc/net/tcp6.
type procProber struct {
	cfg Config
}

func (p *procProber) Probe(ctx context.Context, pid int) (int, bool) {
	return poll(ctx, p.cfg, func() (int, bool) {
		return scanProcForPID(pid)
	})
}

func scanProcForPID(pid int) (int, bool) {
	inodes := socketInodesForPID(pid)
	if len(inodes) == 0 {
		return 0, false
	}

	for _, path := range []string{"/proc/net/tcp", "/proc/net/tcp6"} {
		listening, err := parseListeningPorts(path)
		if err != nil {
			continue
		}
		for inode, port := range listening {
			if inodes[inode] && validPort(port) {
				return port, true
			}
		}
	}
	return 0, false
}

// socketInodesForPID returns the set of socket inodes held open by pid,
// read from the symlink targets under /proc/<pid>/fd.
func socketInodesForPID(pid int) map[int]bool {
	fdDir := filepath.Join("/proc", strconv.Itoa(pid), "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return nil
	}

	inodes := make(map[int]bool)
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(fdDir, entry.Name()))
		if err != nil {
			continue
		}
		if !strings.HasPrefix(target, "socket:[") {
			continue
		}
		inodeStr := strings.TrimSuffix(strings.TrimPrefix(target, "socket:["), "]")
		inode, err := strconv.Atoi(inodeStr)
		if err != nil {
			continue
		}
		inodes[inode] = true
	}
	return inodes
}

// parseListeningPorts reads a /proc/net/tcp[6]-shaped file and returns
// inode -> port for every row in TCP_LISTEN (hex state "0A").
func parseListeningPorts(path string) (map[int]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result := make(map[int]int)
	scanner := bufio.NewScanner(file)
	scanner.Scan() // header line

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}

		state := fields[3]
		if state != "0A" {
			continue
		}

		addrParts := strings.Split(fields[1], ":")
		if len(addrParts) != 2 {
			continue
		}
		port, err := strconv.ParseInt(addrParts[1], 16, 32)
		if err != nil {
			continue
		}

		inode, err := strconv.Atoi(fields[9])
		if err != nil {
			continue
		}

		result[inode] = int(port)
	}
	return result, scanner.Err()
}

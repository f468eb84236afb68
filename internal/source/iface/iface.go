// Package iface enumerates capture interfaces through netlink.
package iface

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"sort"
	"strconv"
	"strings"

	"github.com/vishvananda/netlink"

	"firestige.xyz/nubble/internal/core"
)

// Interface is a network link as shown to the user.
type Interface struct {
	Index        int // kernel ifindex
	Name         string
	HardwareAddr net.HardwareAddr
	MTU          int
	Up           bool
}

// linkList is swapped out in tests.
var linkList = netlink.LinkList

// List returns every link ordered by kernel index.
func List() ([]Interface, error) {
	links, err := linkList()
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	out := make([]Interface, 0, len(links))
	for _, l := range links {
		attrs := l.Attrs()
		if attrs == nil {
			continue
		}
		out = append(out, Interface{
			Index:        attrs.Index,
			Name:         attrs.Name,
			HardwareAddr: attrs.HardwareAddr,
			MTU:          attrs.MTU,
			Up:           attrs.Flags&net.FlagUp != 0,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// Print writes the "Available interfaces:" listing. Entries are numbered
// by position, which is what Select expects back.
func Print(w io.Writer, ifaces []Interface) error {
	if _, err := fmt.Fprintln(w, "Available interfaces:"); err != nil {
		return err
	}
	for i, it := range ifaces {
		if _, err := fmt.Fprintf(w, "%d: %s\n", i, it.Name); err != nil {
			return err
		}
	}
	return nil
}

// Select prints the listing to w, reads a position from r and returns the
// chosen interface name.
func Select(r io.Reader, w io.Writer) (string, error) {
	ifaces, err := List()
	if err != nil {
		return "", err
	}
	return choose(ifaces, r, w)
}

func choose(ifaces []Interface, r io.Reader, w io.Writer) (string, error) {
	if err := Print(w, ifaces); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(w, "Select an interface by index: "); err != nil {
		return "", err
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read selection: %w", err)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return "", fmt.Errorf("invalid index %q", strings.TrimSpace(line))
	}
	if idx < 0 || idx >= len(ifaces) {
		return "", fmt.Errorf("selected interface %d does not exist: %w", idx, core.ErrInterfaceNotFound)
	}
	return ifaces[idx].Name, nil
}

// Lookup finds a link by name.
func Lookup(name string) (Interface, error) {
	ifaces, err := List()
	if err != nil {
		return Interface{}, err
	}
	for _, it := range ifaces {
		if it.Name == name {
			return it, nil
		}
	}
	return Interface{}, fmt.Errorf("%s: %w", name, core.ErrInterfaceNotFound)
}

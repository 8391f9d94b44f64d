package console

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

// Debug runs an interactive REPL against the console: breakpoints,
// single-stepping, memory/stack inspection, and running to
// completion. It reads from stdin, so it's meant for a terminal, not
// a script.
func (c *Console) Debug(ctx context.Context) {
	in := bufio.NewReader(os.Stdin)
	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n%s\n\n", c.Bus.CPU, c.Bus.PPU)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion or next breakpoint")
		fmt.Println("(S)tep - step one CPU instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - display a memory range")
		fmt.Println("S(t)ack - show the top of the stack")
		fmt.Println("(P)C - set the program counter")
		fmt.Println("(Q)uit")
		fmt.Print("Choice: ")

		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case 'b', 'B':
			breaks[readAddress(in, "Breakpoint (e.g. ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			c.Bus.CPU.SetPC(readAddress(in, "Set PC to (e.g. 0400): "))
		case 'q', 'Q':
			return
		case 'e', 'E':
			c.Bus.CPU.Reset()
		case 'r', 'R':
			c.runToBreakpoint(ctx, breaks)
		case 's', 'S':
			if _, _, err := c.Step(); err != nil {
				fmt.Println(err)
			}
		case 't', 'T':
			fmt.Println()
			top := c.Bus.CPU.StackAddr()
			for i := uint16(0); i < 3 && top+i <= 0x01FF; i++ {
				fmt.Printf("0x%04X: 0x%02X ", top+i, c.Bus.Read(top+i))
			}
			fmt.Printf("\n\n")
		case 'm', 'M':
			low := readAddress(in, "Low address (e.g. f00d): ")
			high := readAddress(in, "High address (e.g. beef): ")
			fmt.Println()
			for i, x := low, 0; ; i, x = i+1, x+1 {
				fmt.Printf("0x%04X: 0x%02X ", i, c.Bus.Read(i))
				if x%5 == 4 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
			}
			fmt.Printf("\n\n")
		}
	}
}

func (c *Console) runToBreakpoint(ctx context.Context, breaks map[uint16]struct{}) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigQuit)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigQuit:
			return
		default:
		}
		if _, ok := breaks[c.Bus.CPU.PC()]; ok {
			return
		}
		if _, _, err := c.Step(); err != nil {
			fmt.Println(err)
			return
		}
	}
}

func readAddress(in *bufio.Reader, prompt string) uint16 {
	fmt.Print(prompt)
	line, _ := in.ReadString('\n')
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	v, err := strconv.ParseUint(line, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}

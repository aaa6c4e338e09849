package vm

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/lolc/internal/config"
)

// registerForeign installs the routines every lowered program may call.
func (m *Machine) registerForeign() {
	m.foreign[config.PrintStringFunc] = printString
	m.foreign[config.PrendFunc] = prend
	m.foreign[config.ReadStringFunc] = readString
	m.foreign[config.IntToStringFunc] = formatInto(func(x float64) string {
		return strconv.FormatInt(int64(x), 10)
	})
	m.foreign[config.FloatToStringFunc] = formatInto(func(x float64) string {
		return strconv.FormatFloat(x, 'f', 2, 64)
	})
	m.foreign[config.TroofToStringFunc] = formatInto(func(x float64) string {
		if x != 0 {
			return "WIN"
		}
		return "FAIL"
	})
	m.foreign[config.StringToIntFunc] = parseFrom(func(s string) float64 {
		n, _ := strconv.ParseInt(numericPrefix(s, false), 10, 64)
		return float64(n)
	})
	m.foreign[config.StringToFloatFunc] = parseFrom(func(s string) float64 {
		f, _ := strconv.ParseFloat(numericPrefix(s, true), 64)
		return f
	})
	m.foreign[config.FloatToIntFunc] = func(m *Machine) error {
		m.push(math.Trunc(m.pop()))
		return nil
	}
	m.foreign[config.IntToFloatFunc] = func(m *Machine) error {
		m.push(m.pop())
		return nil
	}
}

// text collects the non-zero cells of [addr, addr+n).
func (m *Machine) text(addr, n int) (string, error) {
	if err := m.checkRange(addr, n); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, c := range m.heap[addr : addr+n] {
		if c != 0 {
			sb.WriteByte(byte(c))
		}
	}
	return sb.String(), nil
}

// writeText fills [addr, addr+n) with s, zero-padded and truncated to n.
func (m *Machine) writeText(addr, n int, s string) error {
	if err := m.checkRange(addr, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i < len(s) {
			m.heap[addr+i] = float64(s[i])
		} else {
			m.heap[addr+i] = 0
		}
	}
	return nil
}

// printString: [addr n] -> []
func printString(m *Machine) error {
	n := int(m.pop())
	addr := int(m.pop())
	s, err := m.text(addr, n)
	if err != nil {
		return err
	}
	_, err = m.out.WriteString(s)
	return err
}

// prend: [] -> []
func prend(m *Machine) error {
	return m.out.WriteByte('\n')
}

// readString: [addr n] -> []. End of input reads as an empty line.
func readString(m *Machine) error {
	n := int(m.pop())
	addr := int(m.pop())
	if err := m.out.Flush(); err != nil {
		return err
	}
	line, err := m.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	line = strings.TrimRight(line, "\r\n")
	if len(line) > n {
		line = line[:n]
	}
	return m.writeText(addr, n, line)
}

// formatInto builds a [x addr] -> [] routine writing a ConvertedYarnSize
// block.
func formatInto(format func(float64) string) Routine {
	return func(m *Machine) error {
		addr := int(m.pop())
		x := m.pop()
		return m.writeText(addr, config.ConvertedYarnSize, format(x))
	}
}

// parseFrom builds an [addr n] -> [x] routine.
func parseFrom(parse func(string) float64) Routine {
	return func(m *Machine) error {
		n := int(m.pop())
		addr := int(m.pop())
		s, err := m.text(addr, n)
		if err != nil {
			return err
		}
		m.push(parse(s))
		return nil
	}
}

// numericPrefix returns the longest leading number in s, skipping leading
// blanks, in the way strtoll and strtod read it.
func numericPrefix(s string, fraction bool) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fraction && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return "0"
	}
	if fraction && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

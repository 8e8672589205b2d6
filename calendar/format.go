/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format tokens, longest first so that "MMMM" wins over "MM".
var formatTokens = []string{
	"YYYY", "MMMM", "dddd",
	"SSS", "MMM", "ddd",
	"YY", "MM", "DD", "HH", "hh", "mm", "ss", "ww",
	"Q", "M", "D", "d", "H", "h", "A", "a", "m", "s", "w",
}

// Format renders t according to a moment-style layout.  Supported tokens are
// YYYY YY Q MMMM MMM MM M DD D dddd ddd d ww w HH H hh h A a mm m ss s SSS;
// text in square brackets is copied literally, as is any other character.
func (c *Calendar) Format(t time.Time, layout string) string {
	t = c.In(t)
	var sb strings.Builder
	for i := 0; i < len(layout); {
		if layout[i] == '[' {
			end := strings.IndexByte(layout[i:], ']')
			if end < 0 {
				sb.WriteString(layout[i+1:])
				break
			}
			sb.WriteString(layout[i+1 : i+end])
			i += end + 1
			continue
		}
		token := ""
		for _, tok := range formatTokens {
			if strings.HasPrefix(layout[i:], tok) {
				token = tok
				break
			}
		}
		if token == "" {
			sb.WriteByte(layout[i])
			i++
			continue
		}
		sb.WriteString(c.formatToken(t, token))
		i += len(token)
	}
	return sb.String()
}

func (c *Calendar) formatToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", ((t.Year()%100)+100)%100)
	case "Q":
		return strconv.Itoa(c.Quarter(t))
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "ww":
		return fmt.Sprintf("%02d", c.Week(t))
	case "w":
		return strconv.Itoa(c.Week(t))
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	}
	return token
}

func hour12(t time.Time) int {
	if h := t.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

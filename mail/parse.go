// Copyright 2025 Soutien Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParseFile parses a single .eml or .txt file into an Email.
func ParseFile(path string) (*Email, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".eml":
		return parseEML(path, raw)
	case ".txt":
		return parseTxt(path, raw), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Ext(path))
	}
}

// LoadDir parses every .eml and .txt file directly under dir, sorted by
// file name so repeated loads yield the same order.
func LoadDir(dir string) ([]*Email, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading mail directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".eml", ".txt":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	emails := make([]*Email, 0, len(names))
	for _, name := range names {
		email, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

func parseEML(path string, raw []byte) (*Email, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	email := &Email{
		ID:      stableID(raw),
		Path:    path,
		From:    firstAddress(msg.Header.Get("From")),
		To:      addressList(msg.Header.Get("To")),
		CC:      addressList(msg.Header.Get("Cc")),
		BCC:     addressList(msg.Header.Get("Bcc")),
		Subject: decodeHeader(msg.Header.Get("Subject")),
	}
	if date, err := msg.Header.Date(); err == nil {
		email.Date = date
	}

	body, attachments, err := extractBody(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	email.Body = strings.TrimSpace(body)
	email.Attachments = attachments
	return email, nil
}

// parseTxt handles the loose "pseudo e-mail" text format: an optional
// header block, a blank line, then the body. Without a blank line the
// whole file is the body.
func parseTxt(path string, raw []byte) *Email {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")

	email := &Email{ID: stableID(raw), Path: path}

	headerPart, bodyPart, found := strings.Cut(text, "\n\n")
	if !found {
		email.Body = strings.TrimSpace(text)
		return email
	}

	for _, line := range strings.Split(headerPart, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "from":
			email.From = firstAddress(value)
		case "to":
			email.To = addressList(value)
		case "cc":
			email.CC = addressList(value)
		case "bcc":
			email.BCC = addressList(value)
		case "subject":
			email.Subject = value
		case "date":
			if date, err := mail.ParseDate(value); err == nil {
				email.Date = date
			}
		}
	}
	email.Body = strings.TrimSpace(bodyPart)
	return email
}

// extractBody picks the first text/plain part of the message and lists
// attachment file names. Multipart messages without a text/plain part
// yield an empty body.
func extractBody(contentType, transferEncoding string, r io.Reader) (string, []string, error) {
	if contentType == "" {
		body, err := io.ReadAll(decodeTransfer(transferEncoding, r))
		return string(body), nil, err
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil, err
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return walkMultipart(multipart.NewReader(r, params["boundary"]))
	}

	if mediaType != "text/plain" {
		return "", nil, nil
	}
	body, err := io.ReadAll(decodeTransfer(transferEncoding, r))
	return string(body), nil, err
}

func walkMultipart(mr *multipart.Reader) (string, []string, error) {
	var body string
	var attachments []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return body, attachments, nil
		}
		if err != nil {
			return "", nil, err
		}

		if name := part.FileName(); name != "" {
			attachments = append(attachments, name)
			continue
		}
		if body != "" {
			continue
		}

		mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil || mediaType != "text/plain" {
			continue
		}
		data, err := io.ReadAll(decodeTransfer(part.Header.Get("Content-Transfer-Encoding"), part))
		if err != nil {
			return "", nil, err
		}
		body = string(data)
	}
}

func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

func decodeHeader(value string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// firstAddress returns the bare address of the first entry in a From-style
// header, or the raw value when it does not parse.
func firstAddress(value string) string {
	if value == "" {
		return ""
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	if addr.Name != "" {
		return fmt.Sprintf("%s <%s>", addr.Name, addr.Address)
	}
	return addr.Address
}

func addressList(value string) []string {
	if value == "" {
		return nil
	}
	addrs, err := mail.ParseAddressList(value)
	if err != nil {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.Address)
	}
	return out
}

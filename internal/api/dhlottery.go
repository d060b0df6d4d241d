package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"lotto-picker/internal/config"
	"lotto-picker/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/valyala/fasthttp"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// dhlottery.co.kr rejects clients that do not look like a browser, so
// the request carries a desktop Chrome identity and a referer from the
// same site.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// winCountMarker is the Korean label ("win count") that identifies the
// statistics table; the page layout shifts, so the table is located by
// content rather than position.
const winCountMarker = "당첨횟수"

var ErrStatTableNotFound = errors.New("api: no table containing the win count marker")

// LottoClient fetches the per-number win statistics page.
type LottoClient struct {
	url     string
	referer string
	client  *fasthttp.Client
}

func NewLottoClient(cfg *config.Config) *LottoClient {
	return &LottoClient{
		url:     cfg.StatsURL,
		referer: cfg.StatsReferer,
		client: &fasthttp.Client{
			MaxConnsPerHost:     4,
			ReadTimeout:         cfg.FetchTimeout,
			WriteTimeout:        cfg.FetchTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
			TLSConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
	}
}

// FetchStatistics performs one GET against the statistics page and
// parses it into a full frequency table. Every failure mode (transport,
// decode, parse, shape) comes back as an error; fallback selection is
// the caller's concern.
func (c *LottoClient) FetchStatistics(ctx context.Context) (domain.FrequencyTable, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(browserUserAgent)
	req.Header.SetReferer(c.referer)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("api: fetch statistics: %w", err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("api: fetch statistics: %w", err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("api: statistics page returned %d", resp.StatusCode())
	}

	// the site serves EUC-KR, not UTF-8; decoding first keeps the
	// Korean table headers intact for marker matching
	decoded, err := decodeEUCKR(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("api: decode statistics page: %w", err)
	}

	return ParseStatTable(decoded)
}

func decodeEUCKR(body []byte) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(body), korean.EUCKR.NewDecoder())
	return io.ReadAll(r)
}

// ParseStatTable extracts the frequency table from the decoded page.
// The relevant table is the first one whose text contains the win
// count marker. Within it, columns 1 and 3 hold number and count
// (column 2 is a bar graph); header names are unreliable so access is
// positional. Rows that fail integer coercion are dropped, and the
// cleaned result must form the exact set {1..45} or the parse fails.
func ParseStatTable(page []byte) (domain.FrequencyTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("api: parse statistics html: %w", err)
	}

	var statTable *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), winCountMarker) {
			statTable = s
			return false
		}
		return true
	})
	if statTable == nil {
		return nil, ErrStatTableNotFound
	}

	var records domain.FrequencyTable
	statTable.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		number, err := parseCellInt(cells.Eq(0))
		if err != nil {
			return
		}
		count, err := parseCellInt(cells.Eq(2))
		if err != nil {
			return
		}
		records = append(records, domain.FrequencyRecord{Number: number, Count: count})
	})

	records.SortByNumber()
	if err := records.Validate(); err != nil {
		return nil, fmt.Errorf("api: cleaned statistics rows: %w", err)
	}

	return records, nil
}

func parseCellInt(cell *goquery.Selection) (int, error) {
	text := strings.TrimSpace(cell.Text())
	text = strings.ReplaceAll(text, ",", "")
	return strconv.Atoi(text)
}

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Ahnaf19/JobSnap/internal/config"
	"github.com/Ahnaf19/JobSnap/internal/network"
	"github.com/Ahnaf19/JobSnap/internal/ngstate"
	"github.com/Ahnaf19/JobSnap/internal/parser"
	"github.com/Ahnaf19/JobSnap/internal/scraper"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Fetch a job page through each proxy and report whether the job data came back."`
}

type ProxyCheckCmd struct {
	Job     string `help:"Job URL or numeric id to fetch." default:"https://bdjobs.com/jobs/details/1436685"`
	Timeout int    `help:"Timeout in seconds." default:"15"`
	Proxies string `help:"Comma-separated proxy URLs (default from JOBSNAP_PROXIES or proxies.txt)."`
}

// Proxy check outcomes. A proxy that serves the page without the embedded
// job record is usually being shown a captcha or a stripped page.
const (
	proxyOK      = "ok"
	proxyNoState = "no_state"
	proxyFailed  = "error"
)

var errNoUsableProxy = errors.New("no proxy returned the job data")

type proxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	JobTitle  string `json:"job_title,omitempty"`
	Bytes     int    `json:"bytes"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	target, err := proxyCheckTarget(p.Job)
	if err != nil {
		return exitError(ExitInvalidArgs, err)
	}

	proxies, err := config.LoadProxies(p.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return exitError(ExitInvalidArgs, network.ErrNoProxies)
	}

	timeout := time.Duration(p.Timeout) * time.Second
	results := make([]proxyCheckResult, 0, len(proxies))
	usable := 0
	for _, proxy := range proxies {
		result := checkProxy(ctx, proxy, target, timeout)
		if result.Status == proxyOK {
			usable++
		}
		results = append(results, result)
	}

	if err := writeProxyResults(ctx, results); err != nil {
		return err
	}
	if usable == 0 {
		return exitError(ExitFetchFailed, errNoUsableProxy)
	}
	return nil
}

// proxyCheckTarget turns a job URL or bare id into the canonical details URL.
func proxyCheckTarget(job string) (string, error) {
	job = strings.TrimSpace(job)
	if job != "" && strings.Trim(job, "0123456789") == "" {
		return parser.DetailsURL(job), nil
	}
	return scraper.CanonicalURL(job)
}

func checkProxy(ctx *Context, proxy, target string, timeout time.Duration) proxyCheckResult {
	result := proxyCheckResult{Proxy: proxy, Status: proxyFailed}

	fetcher, err := ctx.proxyFetcher(proxy, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	fetchCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	html, err := fetcher.FetchHTML(fetchCtx, target)
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		ctx.Logger.Debug().Err(err).Str("proxy", proxy).Msg("proxy fetch failed")
		return result
	}
	result.Bytes = len(html)

	detail := ngstate.FindJobDetails(ngstate.ExtractState(html))
	if detail == nil {
		result.Status = proxyNoState
	} else {
		result.Status = proxyOK
		result.JobTitle = detail.Present("JobTitle", "JobTitleEN", "JobTitleENG")
	}
	ctx.Logger.Debug().
		Str("proxy", proxy).
		Str("status", result.Status).
		Int("bytes", result.Bytes).
		Int64("latency_ms", result.LatencyMS).
		Msg("proxy checked")
	return result
}

func writeProxyResults(ctx *Context, results []proxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, res.JobTitle, fmt.Sprintf("%d", res.LatencyMS), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tjob_title\tlatency_ms\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", res.Proxy, res.Status, orDash(res.JobTitle), res.LatencyMS, res.Error)
	}
	return tw.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

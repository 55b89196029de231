package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ben-windsurf/crypto-web-application/pkg/fixture"
)

// LocalPriceURL points the page at this server's own simple-price
// endpoint instead of the public price API.
const LocalPriceURL = "/api/v3/simple/price?ids=bitcoin,ethereum,cardano,solana&vs_currencies=usd&include_24hr_change=true"

// Trade listings default to this many rows, as the backend did.
const defaultRecentLimit = 10

// overviewTrades is the number of trades in the dashboard overview.
const overviewTrades = 5

// APIHandler serves the read-only market, portfolio and trade endpoints
// from fixture data. Nothing it serves changes between requests.
type APIHandler struct {
	prices       fixture.Prices
	portfolio    fixture.Portfolio
	transactions []fixture.Transaction
}

// NewAPIHandler builds the handler from the server's fixtures.
func NewAPIHandler(cfg Config) *APIHandler {
	return &APIHandler{
		prices:       cfg.Prices,
		portfolio:    cfg.Portfolio,
		transactions: cfg.Transactions,
	}
}

// SetupRoutes registers the API under /api.
func (h *APIHandler) SetupRoutes(router gin.IRouter) {
	api := router.Group("/api", allowAnyOrigin())
	{
		v3 := api.Group("/v3")
		{
			v3.GET("/simple/price", h.SimplePrice)
			v3.GET("/price/:symbol", h.PriceBySymbol)
			v3.GET("/cryptocurrencies", h.Cryptocurrencies)
		}

		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("", h.Portfolio)
			portfolio.GET("/total-value", h.PortfolioTotal)
			portfolio.GET("/:symbol", h.Holding)
		}

		trades := api.Group("/trades")
		{
			trades.GET("", h.Trades)
			trades.GET("/recent", h.RecentTrades)
			trades.GET("/symbol/:symbol", h.TradesBySymbol)
			trades.GET("/:id", h.Trade)
		}

		api.GET("/dashboard/overview", h.Overview)
	}
}

func allowAnyOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

type priceResponse struct {
	Symbol    string      `json:"symbol"`
	Name      string      `json:"name"`
	USD       json.Number `json:"usd"`
	Change24h json.Number `json:"usd_24h_change"`
}

type cryptocurrencyResponse struct {
	Symbol           string      `json:"symbol"`
	Ticker           string      `json:"ticker"`
	Name             string      `json:"name"`
	CurrentPrice     json.Number `json:"currentPrice"`
	ChangePercent24h json.Number `json:"changePercent24h"`
}

type holdingResponse struct {
	Symbol       string      `json:"symbol"`
	Ticker       string      `json:"ticker"`
	Quantity     json.Number `json:"quantity"`
	CurrentValue json.Number `json:"currentValue"`
}

type tradeResponse struct {
	ID         int         `json:"id"`
	Symbol     string      `json:"symbol"`
	Type       string      `json:"type"`
	Amount     json.Number `json:"amount"`
	Price      json.Number `json:"price"`
	TotalValue json.Number `json:"totalValue"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type overviewResponse struct {
	Prices              fixture.Prices    `json:"prices"`
	Portfolio           []holdingResponse `json:"portfolio"`
	TotalPortfolioValue json.Number       `json:"totalPortfolioValue"`
	RecentTrades        []tradeResponse   `json:"recentTrades"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Bad Request",
		"message": message,
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Not Found",
		"message": message,
	})
}

func serverError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"message": err.Error(),
	})
}

// SimplePrice serves the simple-price payload for the requested ids in
// US dollars.
func (h *APIHandler) SimplePrice(c *gin.Context) {
	ids := c.Query("ids")
	if ids == "" {
		badRequest(c, "ids is required")
		return
	}
	if vs := c.Query("vs_currencies"); !strings.EqualFold(vs, "usd") {
		badRequest(c, "vs_currencies must be usd")
		return
	}
	c.JSON(http.StatusOK, h.prices.Only(strings.Split(ids, ",")...))
}

// PriceBySymbol serves one coin's quote, found by coin key or ticker.
func (h *APIHandler) PriceBySymbol(c *gin.Context) {
	asset, ok := fixture.AssetBySymbol(c.Param("symbol"))
	if !ok {
		notFound(c, "unknown symbol "+c.Param("symbol"))
		return
	}
	q, err := h.prices.Quote(asset.CoinID)
	if err != nil {
		notFound(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, priceResponse{
		Symbol:    asset.CoinID,
		Name:      asset.Name,
		USD:       number(q.USD),
		Change24h: number(q.Change24h),
	})
}

// Cryptocurrencies lists every quoted asset in card order.
func (h *APIHandler) Cryptocurrencies(c *gin.Context) {
	out := make([]cryptocurrencyResponse, 0, len(h.prices))
	for _, a := range fixture.Assets() {
		q, err := h.prices.Quote(a.CoinID)
		if err != nil {
			continue
		}
		out = append(out, cryptocurrencyResponse{
			Symbol:           a.CoinID,
			Ticker:           a.Symbol,
			Name:             a.Name,
			CurrentPrice:     number(q.USD),
			ChangePercent24h: number(q.Change24h),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *APIHandler) holding(hd fixture.Holding) (holdingResponse, error) {
	v, err := hd.Value(h.prices)
	if err != nil {
		return holdingResponse{}, err
	}
	symbol := hd.CoinID
	if hd.IsCash() {
		symbol = strings.ToLower(hd.Symbol)
	}
	return holdingResponse{
		Symbol:       symbol,
		Ticker:       hd.Symbol,
		Quantity:     number(hd.Quantity),
		CurrentValue: number(v),
	}, nil
}

func (h *APIHandler) holdings() ([]holdingResponse, error) {
	out := make([]holdingResponse, 0, len(h.portfolio))
	for _, hd := range h.portfolio {
		r, err := h.holding(hd)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Portfolio lists every holding valued at fixture prices.
func (h *APIHandler) Portfolio(c *gin.Context) {
	out, err := h.holdings()
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PortfolioTotal serves the summed holding value as a bare number.
func (h *APIHandler) PortfolioTotal(c *gin.Context) {
	total, err := h.portfolio.Total(h.prices)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, number(total))
}

// Holding serves one holding, found by coin key or ticker.
func (h *APIHandler) Holding(c *gin.Context) {
	hd, ok := h.portfolio.Find(c.Param("symbol"))
	if !ok {
		notFound(c, "no holding for "+c.Param("symbol"))
		return
	}
	r, err := h.holding(hd)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Trade IDs are 1-based positions in the newest-first fixture list.
func tradeResponses(txs []fixture.Transaction, offset int) []tradeResponse {
	out := make([]tradeResponse, len(txs))
	for i, t := range txs {
		out[i] = tradeResponse{
			ID:         offset + i + 1,
			Symbol:     t.Symbol,
			Type:       strings.ToUpper(string(t.Side)),
			Amount:     number(t.Amount),
			Price:      number(t.Price),
			TotalValue: number(t.Amount.Mul(t.Price)),
			Status:     strings.ToUpper(t.Status),
			CreatedAt:  t.At,
		}
	}
	return out
}

// Trades lists every trade, newest first.
func (h *APIHandler) Trades(c *gin.Context) {
	c.JSON(http.StatusOK, tradeResponses(h.transactions, 0))
}

// RecentTrades lists the newest trades, ten unless limit says otherwise.
func (h *APIHandler) RecentTrades(c *gin.Context) {
	limit := defaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, tradeResponses(h.transactions[:min(limit, len(h.transactions))], 0))
}

// TradesBySymbol lists the trades of one asset, found by coin key or
// ticker.
func (h *APIHandler) TradesBySymbol(c *gin.Context) {
	asset, ok := fixture.AssetBySymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusOK, []tradeResponse{})
		return
	}
	out := []tradeResponse{}
	for _, r := range tradeResponses(h.transactions, 0) {
		if r.Symbol == asset.Symbol {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

// Trade serves one trade by ID.
func (h *APIHandler) Trade(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "id must be an integer")
		return
	}
	if id < 1 || id > len(h.transactions) {
		notFound(c, "no trade "+c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, tradeResponses(h.transactions[id-1:id], id-1)[0])
}

// Overview bundles prices, holdings, the total value and the latest
// trades for a single dashboard load.
func (h *APIHandler) Overview(c *gin.Context) {
	holdings, err := h.holdings()
	if err != nil {
		serverError(c, err)
		return
	}
	total, err := h.portfolio.Total(h.prices)
	if err != nil {
		serverError(c, err)
		return
	}
	recent := h.transactions[:min(overviewTrades, len(h.transactions))]
	c.JSON(http.StatusOK, overviewResponse{
		Prices:              h.prices,
		Portfolio:           holdings,
		TotalPortfolioValue: number(total),
		RecentTrades:        tradeResponses(recent, 0),
	})
}

package server

// pageTemplate renders the dashboard. Cards start with placeholder prices
// and a grey change label; the script fills them from the price endpoint
// and leaves them untouched if the request fails.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            margin: 0;
            background: #f5f5f5;
            color: #333;
        }
        .ui.container.main-container { max-width: 1200px; margin: 30px auto; padding: 0 20px; }
        .ui.huge.header { font-size: 2.4em; margin: 0 0 20px; }
        .icon { display: inline-block; width: 1em; height: 1em; margin-right: 0.25em; border-radius: 50%; vertical-align: middle; background: #999; }
        .bitcoin.icon { background: #f7931a; }
        .ethereum.icon { background: #627eea; }
        .cardano.icon { background: #0033ad; }
        .solana.icon { background: #9945ff; }
        .dollar.icon { background: #21ba45; }
        .chart.icon, .exchange.icon, .briefcase.icon, .history.icon { background: #4285f4; border-radius: 2px; }
        .ui.cards { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; margin-bottom: 20px; }
        .ui.card { background: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); padding: 16px; }
        .ui.card .header { font-weight: 600; margin-bottom: 8px; }
        .ui.large.text { display: block; font-size: 1.6em; margin-bottom: 8px; }
        .ui.label { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 0.85em; color: white; background: #767676; }
        .ui.green.label { background: #21ba45; }
        .ui.red.label { background: #db2828; }
        .ui.stackable.grid { display: grid; grid-template-columns: 2fr 1fr; gap: 16px; }
        .ui.segment, .trading-panel { background: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); padding: 20px; margin-bottom: 16px; }
        .ui.form .field { margin-bottom: 12px; }
        .ui.form label { display: block; font-weight: 600; margin-bottom: 4px; }
        .ui.form input[type="number"] { width: 100%; box-sizing: border-box; padding: 8px; border: 1px solid #ccc; border-radius: 4px; }
        .ui.selection.dropdown { position: relative; border: 1px solid #ccc; border-radius: 4px; padding: 8px; cursor: pointer; background: white; }
        .ui.selection.dropdown .text.default { color: #999; }
        .ui.selection.dropdown .menu { display: none; position: absolute; left: 0; right: 0; top: 100%; z-index: 10; background: white; border: 1px solid #ccc; }
        .ui.selection.dropdown.active .menu { display: block; }
        .ui.selection.dropdown .menu .item { padding: 8px; }
        .ui.selection.dropdown .menu .item:hover, .ui.selection.dropdown .menu .item.selected { background: #f0f0f0; }
        .ui.buttons { display: flex; gap: 8px; }
        .ui.button { flex: 1; border: none; border-radius: 4px; padding: 10px; font-size: 1em; color: white; cursor: pointer; }
        .ui.green.button { background: #21ba45; }
        .ui.red.button { background: #db2828; }
        .ui.button.loading { opacity: 0.6; cursor: progress; }
        .ui.relaxed.divided.list .item { display: flex; gap: 8px; padding: 8px 0; border-bottom: 1px solid #eee; }
        .ui.relaxed.divided.list .item .header { font-weight: 600; }
        .ui.relaxed.divided.list .item .description { color: #666; }
        .ui.statistic { text-align: center; margin-top: 12px; }
        .ui.statistic .value { font-size: 2em; font-weight: 700; }
        .ui.statistic .label { font-size: 0.85em; text-transform: uppercase; color: #666; }
        .ui.celled.striped.table { width: 100%; border-collapse: collapse; }
        .ui.celled.striped.table th, .ui.celled.striped.table td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        .ui.celled.striped.table tbody tr:nth-child(odd) { background: #fafafa; }
        #priceChart { width: 100%; height: 300px; display: block; }
        .chart-description { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="ui container main-container">
        <h1 class="ui huge header"><i class="bitcoin icon"></i>{{.Title}}</h1>

        <div class="ui four stackable cards">
            {{- range .Cards}}
            <div class="ui card crypto-card" data-coin="{{.CoinID}}">
                <div class="content">
                    <div class="header"><i class="{{.CoinID}} icon"></i>{{.Label}}</div>
                    <div class="ui large text price">$--</div>
                    <div class="ui grey label change">--</div>
                </div>
            </div>
            {{- end}}
        </div>

        <div class="ui stackable grid">
            <div class="column">
                <div class="ui segment">
                    <h3 class="ui header"><i class="chart icon"></i>Price Chart</h3>
                    <canvas id="priceChart" width="800" height="300"></canvas>
                    <p class="chart-description">Real-time market data visualization</p>
                </div>

                <div class="trading-panel">
                    <h3 class="ui header"><i class="history icon"></i>Recent Transactions</h3>
                    <table class="ui celled striped table">
                        <thead>
                            <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
                        </thead>
                        <tbody>
                            {{- range .Transactions}}
                            <tr>
                                <td>{{.Date}}</td>
                                <td><div class="ui {{.Color}} label">{{.Side}}</div></td>
                                <td>{{.Symbol}}</td>
                                <td>{{.Amount}}</td>
                                <td>{{.Price}}</td>
                                <td>{{.Status}}</td>
                            </tr>
                            {{- end}}
                        </tbody>
                    </table>
                </div>
            </div>

            <div class="column">
                <div class="trading-panel">
                    <h3 class="ui header"><i class="exchange icon"></i>Quick Trade</h3>
                    <form class="ui form" onsubmit="return false">
                        <div class="field">
                            <label>Cryptocurrency</label>
                            <div class="ui selection dropdown" id="assetDropdown">
                                <input type="hidden" name="asset">
                                <div class="default text">Select Cryptocurrency</div>
                                <div class="menu">
                                    {{- range .Assets}}
                                    <div class="item" data-value="{{.Value}}"><i class="{{.CoinID}} icon"></i>{{.Label}}</div>
                                    {{- end}}
                                </div>
                            </div>
                        </div>
                        <div class="field">
                            <label>Amount</label>
                            <input type="number" name="amount" placeholder="0.00" step="any">
                        </div>
                        <div class="field">
                            <label>Price (USD)</label>
                            <input type="number" name="price" placeholder="Market Price" step="any">
                        </div>
                        <div class="ui buttons">
                            <button type="button" class="ui green button" id="buyBtn">Buy</button>
                            <button type="button" class="ui red button" id="sellBtn">Sell</button>
                        </div>
                    </form>
                </div>

                <div class="trading-panel">
                    <h3 class="ui header"><i class="briefcase icon"></i>Portfolio</h3>
                    <div class="ui relaxed divided list">
                        {{- range .Holdings}}
                        <div class="item">
                            <i class="{{.Icon}} icon"></i>
                            <div class="content">
                                <div class="header">{{.Title}}</div>
                                <div class="description">{{.Value}}</div>
                            </div>
                        </div>
                        {{- end}}
                    </div>
                    <div class="ui statistic">
                        <div class="value">{{.Total}}</div>
                        <div class="label">Total Portfolio Value</div>
                    </div>
                </div>
            </div>
        </div>
    </div>

    <script>
        const PRICE_URL = {{.PriceURL}};
        const TRADE_TRANSITION_MS = {{.TransitionMS}};
        const CHART_SERIES = {{.ChartSeries}};

        function formatUSD(n) {
            return '$' + Number(n).toLocaleString('en-US', { minimumFractionDigits: 2, maximumFractionDigits: 2 });
        }

        function formatChange(n) {
            const s = Number(n).toFixed(2) + '%';
            return n >= 0 ? '+' + s : s;
        }

        async function loadPrices() {
            try {
                const response = await fetch(PRICE_URL);
                if (!response.ok) {
                    throw new Error('price API returned ' + response.status);
                }
                const data = await response.json();
                document.querySelectorAll('.crypto-card').forEach(card => {
                    const quote = data[card.dataset.coin];
                    if (!quote) {
                        return;
                    }
                    card.querySelector('.price').textContent = formatUSD(quote.usd);
                    const label = card.querySelector('.change');
                    const change = quote.usd_24h_change;
                    label.textContent = formatChange(change);
                    label.classList.remove('grey', 'green', 'red');
                    label.classList.add(change >= 0 ? 'green' : 'red');
                });
            } catch (err) {
                console.error('Failed to load prices:', err);
            }
        }

        function drawChart() {
            const canvas = document.getElementById('priceChart');
            const ctx = canvas.getContext('2d');
            const min = Math.min(...CHART_SERIES);
            const max = Math.max(...CHART_SERIES);
            const span = max - min || 1;
            const step = canvas.width / (CHART_SERIES.length - 1);

            ctx.clearRect(0, 0, canvas.width, canvas.height);
            ctx.strokeStyle = '#f7931a';
            ctx.lineWidth = 2;
            ctx.beginPath();
            CHART_SERIES.forEach((v, i) => {
                const x = i * step;
                const y = canvas.height - ((v - min) / span) * (canvas.height - 20) - 10;
                if (i === 0) {
                    ctx.moveTo(x, y);
                } else {
                    ctx.lineTo(x, y);
                }
            });
            ctx.stroke();
        }

        function setupDropdown() {
            const dropdown = document.getElementById('assetDropdown');
            const menu = dropdown.querySelector('.menu');
            const text = dropdown.querySelector('.text');
            const input = dropdown.querySelector('input[type="hidden"]');

            dropdown.addEventListener('click', e => {
                if (menu.contains(e.target)) {
                    return;
                }
                dropdown.classList.toggle('active');
                dropdown.classList.toggle('visible');
            });

            menu.querySelectorAll('.item').forEach(item => {
                item.addEventListener('click', e => {
                    e.stopPropagation();
                    menu.querySelectorAll('.item').forEach(i => i.classList.remove('active', 'selected'));
                    item.classList.add('active', 'selected');
                    input.value = item.dataset.value;
                    text.textContent = item.textContent.trim();
                    text.classList.remove('default');
                    dropdown.classList.remove('active', 'visible');
                });
            });

            document.addEventListener('click', e => {
                if (!dropdown.contains(e.target)) {
                    dropdown.classList.remove('active', 'visible');
                }
            });
        }

        function setupTradeButtons() {
            ['buyBtn', 'sellBtn'].forEach(id => {
                const button = document.getElementById(id);
                button.addEventListener('click', () => {
                    button.classList.add('loading');
                    setTimeout(() => button.classList.remove('loading'), TRADE_TRANSITION_MS);
                });
            });
        }

        document.addEventListener('DOMContentLoaded', () => {
            setupDropdown();
            setupTradeButtons();
            drawChart();
            loadPrices();
        });
    </script>
</body>
</html>`

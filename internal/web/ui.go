package web

import (
	"fmt"
	"net/http"
	"strings"
)

// handleUI serves the embedded UI.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, strings.ReplaceAll(uiHTML, "{{APP_VERSION}}", s.version))
}

const uiHTML = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>System Zarządzania Więzieniem</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: #1b1b1d;
    color: #e4e4e7;
    min-height: 100vh;
    display: flex;
  }
  #sidebar {
    width: 220px;
    background: #18181b;
    border-right: 1px solid #27272a;
    min-height: 100vh;
    padding: 20px 0;
    flex-shrink: 0;
  }
  #sidebar h1 { font-size: 16px; font-weight: 700; padding: 0 20px 20px; color: #fafafa; }
  .nav-item {
    display: block;
    width: 100%;
    text-align: left;
    background: none;
    border: none;
    color: #a1a1aa;
    padding: 10px 20px;
    font-size: 14px;
    cursor: pointer;
  }
  .nav-item:hover { background: #27272a; color: #fafafa; }
  .nav-item.active { color: #FB326E; background: rgba(251, 50, 110, 0.08); border-left: 3px solid #FB326E; }
  .health { padding: 20px; font-size: 12px; color: #71717a; }
  .dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 6px; background: #52525b; }
  .dot.healthy { background: #4ade80; }
  .dot.failed { background: #f87171; }

  .container { flex: 1; padding: 24px; max-width: 1400px; }
  .section { margin-bottom: 32px; }
  .section-header { display: flex; justify-content: space-between; align-items: center; margin-bottom: 12px; }
  .section-header h2 { font-size: 20px; font-weight: 700; }
  .toolbar { display: flex; gap: 8px; margin-bottom: 12px; flex-wrap: wrap; }
  input, select, textarea {
    background: #18181b;
    border: 1px solid #3f3f46;
    color: #e4e4e7;
    border-radius: 6px;
    padding: 8px 10px;
    font-size: 14px;
    font-family: inherit;
  }
  textarea { min-height: 70px; resize: vertical; }
  .btn {
    background: #27272a;
    color: #e4e4e7;
    border: 1px solid #3f3f46;
    border-radius: 6px;
    padding: 6px 12px;
    font-size: 13px;
    cursor: pointer;
  }
  .btn:hover { border-color: #a1a1aa; }
  .btn:disabled { color: #52525b; cursor: not-allowed; }
  .btn-primary { background: #FB326E; border-color: #FB326E; color: #fff; font-weight: 600; }
  .btn-primary:hover { background: #e0285f; }
  .btn-danger { border-color: #7f1d1d; color: #f87171; }
  .btn-danger:hover { background: rgba(248, 113, 113, 0.1); }

  table { width: 100%; border-collapse: collapse; font-size: 13px; background: #18181b; border-radius: 8px; overflow: hidden; }
  th { text-align: left; padding: 10px 12px; background: #27272a; color: #a1a1aa; font-weight: 600; }
  td { padding: 10px 12px; border-top: 1px solid #27272a; }
  td.empty { text-align: center; color: #71717a; padding: 24px; }
  td.actions { white-space: nowrap; }
  td.actions .btn { margin-right: 4px; }

  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 11px; font-weight: 600; }
  .badge-incarcerated, .badge-scheduled, .badge-enrolled { background: #1e3a5f; color: #60a5fa; }
  .badge-released, .badge-completed, .badge-resolved, .badge-minor { background: #14532d; color: #4ade80; }
  .badge-transferred, .badge-moderate, .badge-no_show, .badge-dropped { background: #431407; color: #fb923c; }
  .badge-major, .badge-expelled { background: #4d1500; color: #fb7a37; }
  .badge-critical, .badge-cancelled, .badge-unresolved, .badge-escaped, .badge-deceased { background: #451a1e; color: #f87171; }

  .pager { display: flex; gap: 4px; margin-top: 12px; align-items: center; }
  .pager .btn.active { border-color: #FB326E; color: #FB326E; }
  .pager .ellipsis { color: #71717a; padding: 0 4px; }
  .total { color: #71717a; font-size: 12px; margin-left: 8px; }

  .cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 12px; }
  .card { background: #18181b; border: 1px solid #27272a; border-radius: 8px; padding: 16px; }
  .card h3 { font-size: 15px; margin-bottom: 4px; }
  .card .subtitle { color: #a1a1aa; font-size: 12px; margin-bottom: 8px; }
  .card p { font-size: 13px; color: #d4d4d8; }

  .stats { display: grid; grid-template-columns: repeat(auto-fill, minmax(180px, 1fr)); gap: 12px; margin-bottom: 24px; }
  .stat { background: #18181b; border: 1px solid #27272a; border-radius: 8px; padding: 16px; }
  .stat .value { font-size: 28px; font-weight: 700; color: #fafafa; }
  .stat .label { font-size: 12px; color: #a1a1aa; }
  .block-bar { display: flex; align-items: center; gap: 12px; margin-bottom: 8px; }
  .block-name { width: 120px; font-size: 13px; color: #a1a1aa; }
  .block-bar-fill { flex: 1; background: #27272a; border-radius: 4px; height: 24px; }
  .block-bar-value { background: #FB326E; height: 24px; border-radius: 4px; color: #fff; font-size: 12px; line-height: 24px; padding-left: 8px; min-width: 24px; }

  .tabs { display: flex; gap: 4px; margin-bottom: 12px; flex-wrap: wrap; }
  .tab.active { border-color: #FB326E; color: #FB326E; }

  #modal {
    position: fixed; inset: 0;
    background: rgba(0, 0, 0, 0.6);
    display: none;
    align-items: center; justify-content: center;
    z-index: 100;
  }
  #modal.open { display: flex; }
  .modal-content {
    background: #18181b;
    border: 1px solid #3f3f46;
    border-radius: 10px;
    width: 560px; max-width: 95vw; max-height: 90vh;
    overflow-y: auto;
    padding: 24px;
  }
  .modal-content h3 { margin-bottom: 16px; font-size: 18px; }
  .modal-content h4 { margin: 12px 0 6px; font-size: 14px; color: #fafafa; }
  .modal-content p, .modal-content li { font-size: 13px; color: #d4d4d8; margin-bottom: 4px; }
  .modal-content ul { padding-left: 18px; }
  .form-group { margin-bottom: 12px; display: flex; flex-direction: column; gap: 4px; }
  .form-group label { font-size: 12px; color: #a1a1aa; }
  .form-group .error { font-size: 12px; color: #f87171; }
  .form-actions { display: flex; justify-content: flex-end; gap: 8px; margin-top: 16px; }

  #toasts { position: fixed; bottom: 20px; right: 20px; display: flex; flex-direction: column; gap: 8px; z-index: 200; }
  .toast { padding: 10px 16px; border-radius: 6px; font-size: 13px; background: #27272a; border-left: 4px solid #60a5fa; cursor: pointer; }
  .toast.success { border-left-color: #4ade80; }
  .toast.error { border-left-color: #f87171; }

  .logs { margin-top: 32px; font-family: 'SF Mono', 'Fira Code', monospace; font-size: 11px; color: #71717a; max-height: 160px; overflow-y: auto; }
  .footer { margin-top: 16px; font-size: 11px; color: #52525b; }
</style>
</head>
<body>
<nav id="sidebar"></nav>
<main class="container">
  <div id="app"></div>
  <details class="logs"><summary>Dziennik aktywności</summary><div id="logs"></div></details>
  <div class="footer" id="footer"></div>
</main>
<div id="modal"></div>
<div id="toasts"></div>

<script>
(function() {
  var app      = document.getElementById('app');
  var modalEl  = document.getElementById('modal');
  var toastsEl = document.getElementById('toasts');
  var footerEl = document.getElementById('footer');
  var appVersion = '{{APP_VERSION}}';
  footerEl.textContent = 'prison-admin ' + appVersion + ' · Aktualizacje na żywo';
  var state = null;
  var lastModal = '';
  var ws = null;
  var wsReconnectDelay = 1000;

  function esc(s) {
    if (s === null || s === undefined) return '';
    return String(s).replace(/[&<>"']/g, function(c) {
      return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[c];
    });
  }

  async function call(method, url, body) {
    var opts = { method: method, headers: {} };
    if (body !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(body);
    }
    try {
      var r = await fetch(url, opts);
      if (r.status === 204) return null;
      return await r.json();
    } catch(e) {
      console.error('Request failed:', method, url, e);
      return null;
    }
  }

  async function fetchState() {
    var s = await call('GET', '/ui/state');
    if (s) { state = s; render(); }
  }

  // Sidebar
  function renderSidebar() {
    var h = '<h1>Zarządzanie Więzieniem</h1>';
    (state.pages || []).forEach(function(p) {
      h += '<button class="nav-item' + (p.name === state.page ? ' active' : '') +
        '" data-nav="' + esc(p.name) + '">' + esc(p.label) + '</button>';
    });
    var health = state.apiHealth || {};
    var label = { healthy: 'API dostępne', failed: 'API niedostępne' }[health.status] || 'Sprawdzanie API…';
    h += '<div class="health"><span class="dot ' + esc(health.status) + '"></span>' + esc(label) +
      '<br>' + esc(state.apiUrl) + (health.error ? '<br>' + esc(health.error) : '') + '</div>';
    return h;
  }

  // Dashboard
  function renderDashboard() {
    var d = state.dashboard;
    if (!d) return '<div class="section"><h2>Panel główny</h2></div>';
    var h = '<div class="section"><div class="section-header"><h2>Panel główny</h2></div><div class="stats">';
    d.counters.forEach(function(c) {
      h += '<div class="stat"><div class="value">' + esc(c.text) + '</div><div class="label">' + esc(c.label) + '</div></div>';
    });
    h += '</div><h3 style="margin-bottom:12px">Więźniowie według bloków</h3>';
    d.blocks.forEach(function(b) {
      h += '<div class="block-bar"><span class="block-name">' + esc(b.label) + '</span>' +
        '<div class="block-bar-fill"><div class="block-bar-value" style="width:' + b.percent + '%">' + esc(b.value) + '</div></div></div>';
    });
    return h + '</div>';
  }

  // Tables, cards and lists
  function renderTable(t, entity) {
    var h = '<table><thead><tr>';
    t.columns.forEach(function(c) { h += '<th>' + esc(c) + '</th>'; });
    var hasActions = t.rows.some(function(r) { return r.actions && r.actions.length; });
    if (hasActions) h += '<th>Akcje</th>';
    h += '</tr></thead><tbody>';
    t.rows.forEach(function(r) {
      if (r.placeholder) {
        h += '<tr><td class="empty" colspan="' + Math.max(t.columns.length + (hasActions ? 1 : 0), 1) + '">' + esc(r.cells[0].text) + '</td></tr>';
        return;
      }
      h += '<tr>';
      r.cells.forEach(function(c) {
        h += '<td>' + (c.badge ? '<span class="badge badge-' + esc(c.badge) + '">' + esc(c.text) + '</span>' : esc(c.text)) + '</td>';
      });
      if (hasActions) {
        h += '<td class="actions">';
        (r.actions || []).forEach(function(a) {
          h += '<button class="btn' + (a.kind === 'delete' ? ' btn-danger' : '') + '" data-action="' + esc(a.kind) +
            '" data-entity="' + esc(entity) + '" data-id="' + a.id + '">' + esc(a.label) + '</button>';
        });
        h += '</td>';
      }
      h += '</tr>';
    });
    return h + '</tbody></table>';
  }

  function renderCards(cards) {
    var h = '<div class="cards">';
    cards.forEach(function(c) {
      h += '<div class="card"><h3>' + esc(c.title) + '</h3>';
      if (c.subtitle) h += '<div class="subtitle">' + esc(c.subtitle) + '</div>';
      (c.lines || []).forEach(function(l) { h += '<p>' + esc(l) + '</p>'; });
      h += '</div>';
    });
    return h + '</div>';
  }

  function renderPager(l) {
    if (!l.pager || !l.pager.length) return '';
    var h = '<div class="pager">';
    l.pager.forEach(function(p) {
      if (p.kind === 'ellipsis') { h += '<span class="ellipsis">…</span>'; return; }
      var label = p.kind === 'prev' ? '‹' : p.kind === 'next' ? '›' : p.page;
      h += '<button class="btn' + (p.active ? ' active' : '') + '"' + (p.disabled ? ' disabled' : '') +
        ' data-page="' + p.page + '" data-entity="' + esc(l.entity) + '">' + label + '</button>';
    });
    return h + '<span class="total">Razem: ' + esc(l.totalText) + '</span></div>';
  }

  function renderList(l) {
    var h = '<div class="section"><div class="section-header"><h2>' + esc(l.title) + '</h2>';
    if (l.canCreate) h += '<button class="btn btn-primary" data-create="' + esc(l.entity) + '">Dodaj</button>';
    h += '</div><div class="toolbar">';
    if (l.searchable) {
      h += '<input type="search" placeholder="Szukaj…" data-search="' + esc(l.entity) + '" value="' + esc(l.search) + '">';
    }
    (l.filters || []).forEach(function(f) {
      h += '<select data-filter="' + esc(f.name) + '" data-entity="' + esc(l.entity) + '" title="' + esc(f.label) + '">';
      f.options.forEach(function(o) {
        h += '<option value="' + esc(o.value) + '"' + (o.selected ? ' selected' : '') + '>' + esc(o.label) + '</option>';
      });
      h += '</select>';
    });
    h += '</div>';
    h += l.cards ? renderCards(l.cards) : renderTable(l.table, l.entity);
    h += renderPager(l);
    return h + '</div>';
  }

  function renderReports() {
    var r = state.reportView;
    var h = '<div class="section"><div class="section-header"><h2>Raporty</h2></div>';
    if (!r) return h + '</div>';
    h += '<div class="tabs">';
    r.tabs.forEach(function(t) {
      h += '<button class="btn tab' + (t.active ? ' active' : '') + '" data-report="' + esc(t.name) + '">' + esc(t.label) + '</button>';
    });
    return h + '</div>' + renderTable(r.table, '') + '</div>';
  }

  function renderPage() {
    if (state.page === 'dashboard') return renderDashboard();
    if (state.page === 'reports') return renderReports();
    var lists = Object.values(state.lists || {}).filter(function(l) { return l.page === state.page; });
    lists.sort(function(a, b) { return (a.entity === state.page ? 0 : 1) - (b.entity === state.page ? 0 : 1); });
    return lists.map(renderList).join('');
  }

  // Modal
  function renderField(f) {
    var attrs = ' name="' + esc(f.name) + '"' + (f.required ? ' required' : '') +
      (f.placeholder ? ' placeholder="' + esc(f.placeholder) + '"' : '') +
      (f.min ? ' min="' + esc(f.min) + '"' : '') + (f.max ? ' max="' + esc(f.max) + '"' : '') +
      (f.step ? ' step="' + esc(f.step) + '"' : '');
    var input;
    if (f.kind === 'select') {
      input = '<select' + attrs + '>' + (f.options || []).map(function(o) {
        return '<option value="' + esc(o.value) + '"' + (o.selected ? ' selected' : '') + '>' + esc(o.label) + '</option>';
      }).join('') + '</select>';
    } else if (f.kind === 'textarea') {
      input = '<textarea' + attrs + '>' + esc(f.value) + '</textarea>';
    } else {
      input = '<input type="' + esc(f.kind) + '"' + attrs + ' value="' + esc(f.value) + '">';
    }
    return '<div class="form-group"><label>' + esc(f.label) + (f.required ? ' *' : '') + '</label>' + input +
      (f.error ? '<span class="error">' + esc(f.error) + '</span>' : '') + '</div>';
  }

  function renderModal() {
    var m = state.modal || {};
    var key = JSON.stringify(m);
    if (key === lastModal) return;
    lastModal = key;
    if (!m.open) {
      modalEl.className = '';
      modalEl.innerHTML = '';
      return;
    }
    var h = '<div class="modal-content"><h3>' + esc(m.title) + '</h3>';
    if (m.form) {
      h += '<form id="modal-form" data-entity="' + esc(m.form.entity) + '" data-id="' + (m.form.id || '') + '">';
      m.form.fields.forEach(function(f) { h += renderField(f); });
      h += '<div class="form-actions"><button type="button" class="btn" data-close>Anuluj</button>' +
        '<button type="submit" class="btn btn-primary">Zapisz</button></div></form>';
    } else if (m.detail) {
      m.detail.sections.forEach(function(s) {
        h += '<h4>' + esc(s.heading) + '</h4>';
        (s.lines || []).forEach(function(l) { h += '<p><strong>' + esc(l.label) + ':</strong> ' + esc(l.value) + '</p>'; });
        if (s.items && s.items.length) {
          h += '<ul>' + s.items.map(function(i) { return '<li>' + esc(i) + '</li>'; }).join('') + '</ul>';
        }
      });
      h += '<div class="form-actions"><button type="button" class="btn" data-close>Zamknij</button></div>';
    }
    modalEl.innerHTML = h + '</div>';
    modalEl.className = 'open';
  }

  function renderToasts() {
    toastsEl.innerHTML = (state.toasts || []).map(function(t) {
      return '<div class="toast ' + esc(t.kind) + '" data-toast="' + esc(t.id) + '">' + esc(t.message) + '</div>';
    }).join('');
  }

  function renderLogs() {
    document.getElementById('logs').innerHTML = (state.logs || []).slice().reverse().map(function(l) {
      return '<div>' + esc(l.message) + '</div>';
    }).join('');
  }

  function render() {
    if (!state) return;
    // Keep the typed term and caret of a search box across re-renders;
    // the server only knows the last applied term.
    var active = document.activeElement;
    var searching = active && active.dataset && active.dataset.search;
    var typed = searching ? active.value : '';
    var caret = searching ? active.selectionStart : 0;

    document.getElementById('sidebar').innerHTML = renderSidebar();
    app.innerHTML = renderPage();
    renderModal();
    renderToasts();
    renderLogs();

    if (searching) {
      var input = app.querySelector('[data-search="' + searching + '"]');
      if (input) {
        input.value = typed;
        input.focus();
        input.setSelectionRange(caret, caret);
      }
    }
  }

  // Events
  document.addEventListener('click', async function(e) {
    var t = e.target;
    if (t === modalEl) { await call('POST', '/ui/modal/click', { target: 'modal' }); return; }
    if (t.dataset.nav) { await call('POST', '/ui/navigate', { page: t.dataset.nav }); return; }
    if (t.dataset.create) { await call('GET', '/ui/forms/' + t.dataset.create); return; }
    if (t.dataset.report) { await call('GET', '/ui/reports/' + t.dataset.report); return; }
    if (t.dataset.toast) { await call('DELETE', '/ui/toasts/' + t.dataset.toast); return; }
    if (t.hasAttribute('data-close')) { await call('POST', '/ui/modal/close'); return; }
    if (t.dataset.page && !t.disabled) {
      await call('POST', '/ui/lists/' + t.dataset.entity + '/page', { page: parseInt(t.dataset.page, 10) });
      return;
    }
    if (t.dataset.action) {
      var entity = t.dataset.entity, id = t.dataset.id;
      if (t.dataset.action === 'view') {
        await call('GET', '/ui/prisoners/' + id + '/detail');
      } else if (t.dataset.action === 'edit') {
        await call('GET', '/ui/forms/' + entity + '?id=' + id);
      } else if (t.dataset.action === 'delete') {
        var list = (state.lists || {})[entity] || {};
        if (!confirm(list.confirmDelete || 'Czy na pewno?')) return;
        await call('DELETE', '/ui/records/' + entity + '/' + id + '?confirm=true');
      }
    }
  });

  document.addEventListener('input', function(e) {
    var entity = e.target.dataset && e.target.dataset.search;
    if (entity) call('POST', '/ui/lists/' + entity + '/search', { term: e.target.value });
  });

  document.addEventListener('change', function(e) {
    var t = e.target;
    if (t.dataset && t.dataset.filter) {
      call('POST', '/ui/lists/' + t.dataset.entity + '/filter', { name: t.dataset.filter, value: t.value });
    }
  });

  document.addEventListener('submit', async function(e) {
    if (e.target.id !== 'modal-form') return;
    e.preventDefault();
    var f = e.target;
    var values = {};
    Array.prototype.forEach.call(f.elements, function(el) { if (el.name) values[el.name] = el.value; });
    var body = { values: values };
    if (f.dataset.id) body.id = parseInt(f.dataset.id, 10);
    await call('POST', '/ui/forms/' + f.dataset.entity, body);
  });

  // Close modal on ESC key
  document.addEventListener('keydown', function(e) {
    if (e.key === 'Escape' && state && state.modal && state.modal.open) {
      call('POST', '/ui/modal/key', { key: 'Escape' });
    }
  });

  // WebSocket connection
  function connectWebSocket() {
    var protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
    try {
      ws = new WebSocket(protocol + '//' + window.location.host + '/ws');
      ws.onopen = function() { wsReconnectDelay = 1000; };
      ws.onmessage = function(event) {
        try {
          state = JSON.parse(event.data);
          render();
        } catch(e) {
          console.error('Failed to parse WebSocket message:', e);
        }
      };
      ws.onclose = function() {
        ws = null;
        // Exponential backoff with max 10 seconds
        wsReconnectDelay = Math.min(wsReconnectDelay * 1.5, 10000);
        setTimeout(connectWebSocket, wsReconnectDelay);
      };
    } catch(e) {
      console.error('Failed to create WebSocket:', e);
      setTimeout(connectWebSocket, wsReconnectDelay);
    }
  }

  connectWebSocket();
  fetchState().then(function() {
    if (state) call('POST', '/ui/navigate', { page: state.page });
  });

  // Fallback polling (only if WebSocket is disconnected)
  setInterval(function() {
    if (!ws || ws.readyState !== WebSocket.OPEN) fetchState();
  }, 5000);
})();
</script>
</body>
</html>`

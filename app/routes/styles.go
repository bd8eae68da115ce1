package routes

// Stylesheet is inlined into every page. It covers the handful of
// Bootstrap-style class names the components use.
const Stylesheet = `
body { margin: 0; font-family: system-ui, sans-serif; color: #212529; }
.navbar { display: flex; align-items: center; gap: 1rem; padding: .5rem 1rem; background: #f8f9fa; border-bottom: 1px solid #dee2e6; }
.navbar-brand { font-weight: 600; text-decoration: none; color: inherit; }
.navbar-nav { display: flex; gap: .5rem; list-style: none; margin: 0; padding: 0; }
.nav-link { color: #0d6efd; text-decoration: none; padding: .25rem .5rem; }
.nav-link.active { color: #212529; font-weight: 600; }
.container { max-width: 960px; margin: 0 auto; padding: 1rem; }
.login-cards { display: flex; flex-wrap: wrap; gap: 1rem; margin-bottom: 1rem; }
.card { border: 1px solid #dee2e6; border-radius: .375rem; min-width: 14rem; }
.card-body { padding: 1rem; }
.card-title { margin-top: 0; }
.text-muted { color: #6c757d; }
.mb-3 { margin-bottom: 1rem; }
.form-label { display: block; margin-bottom: .25rem; }
.login-form input:not([type=checkbox]) { width: 100%; max-width: 24rem; padding: .375rem .75rem; }
.modal-backdrop { position: fixed; inset: 0; background: rgba(0,0,0,.5); }
.modal { position: fixed; top: 20%; left: 50%; transform: translateX(-50%); background: #fff; border-radius: .5rem; min-width: 20rem; }
.modal-header, .modal-footer { display: flex; justify-content: space-between; align-items: center; padding: 1rem; }
.modal-body { padding: 0 1rem; }
.modal-title { margin: 0; }
.btn { border: 1px solid transparent; border-radius: .375rem; padding: .375rem .75rem; cursor: pointer; }
.btn-primary { background: #0d6efd; color: #fff; }
.btn-secondary { background: #6c757d; color: #fff; }
.form-check { display: flex; gap: .5rem; align-items: center; }
.btn-close { border: 0; background: none; font-size: 1.25rem; cursor: pointer; }
`

package site

// layoutTemplate wraps every page. Pages define "content".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Heading}}{{.Heading}} | {{end}}{{.SiteTitle}}</title>
  <link rel="stylesheet" href="/static/site.css">
</head>
<body>
  <header class="nav">
    <a class="brand" href="/">{{.Owner}}</a>
    <nav>
      <a href="/#about">About</a>
      <a href="/#skills">Skills</a>
      <a href="/projects">Projects</a>
      <a href="/#contact">Contact</a>
    </nav>
  </header>
  <main>
    {{template "content" .}}
  </main>
  <footer class="footer">&copy; {{.Year}} {{.Owner}}</footer>
</body>
</html>{{end}}`

const homeTemplate = `{{define "content"}}
<section class="hero">
  <h1>{{.Profile.Name}}</h1>
  <p class="headline">{{.Profile.Headline}}</p>
  {{if .Profile.Location}}<p class="muted">{{.Profile.Location}}</p>{{end}}
  <div class="links">
    {{if .Profile.GitHub}}<a href="{{.Profile.GitHub}}">GitHub</a>{{end}}
    {{if .Profile.LinkedIn}}<a href="{{.Profile.LinkedIn}}">LinkedIn</a>{{end}}
    {{if .Profile.Email}}<a href="mailto:{{.Profile.Email}}">Email</a>{{end}}
  </div>
</section>

<section id="about">
  <h2>About</h2>
  {{range .Profile.Bio}}<p>{{.}}</p>{{end}}
  <div class="stats">
    {{range .Stats}}<div class="stat"><span class="icon">{{.Glyph}}</span><strong>{{.Value}}</strong><span>{{.Label}}</span></div>{{end}}
  </div>
</section>

<section id="skills">
  <h2>Skills</h2>
  <div class="skill-groups">
  {{range .Groups}}
    <div class="card">
      <h3>{{.Title}}</h3>
      {{range .Skills}}
      <div class="skill">
        <div class="skill-label"><span>{{.Name}}</span><span>{{.Level}}%</span></div>
        <div class="bar"><div class="fill" style="width: {{.Level}}%"></div></div>
      </div>
      {{end}}
    </div>
  {{else}}
    <p class="muted">No skills yet.</p>
  {{end}}
  </div>
</section>

<section id="projects">
  <h2>Featured Projects</h2>
  {{template "cards" .Featured}}
  <p><a href="/projects">All projects</a></p>
</section>

<section id="contact">
  <h2>Contact</h2>
  {{if .Sent}}<p class="notice">Thanks for your message! I will get back to you soon.</p>{{end}}
  {{if .FormError}}<p class="error">{{.FormError}}</p>{{end}}
  <form method="post" action="/contact" class="contact-form">
    <input name="name" placeholder="Your name" value="{{.Form.Name}}" required>
    <input name="email" type="email" placeholder="you@example.com" value="{{.Form.Email}}" required>
    <textarea name="message" rows="5" placeholder="Your message" required>{{.Form.Message}}</textarea>
    <button type="submit">Send</button>
  </form>
</section>
{{end}}`

const cardsTemplate = `{{define "cards"}}
<div class="cards">
{{range .}}
  <article class="card project">
    <div class="banner" style="{{.Gradient}}"><span class="icon">{{.Glyph}}</span></div>
    <h3><a href="/projects/{{.ID}}">{{.Title}}</a></h3>
    <p class="category">{{.CategoryLabel}}</p>
    <div class="description">{{.Description}}</div>
    <ul class="tags">{{range .Tags}}<li>{{.}}</li>{{end}}</ul>
    <div class="links">
      {{if .GitHubURL}}<a href="{{.GitHubURL}}">Code</a>{{end}}
      {{if .LiveURL}}<a href="{{.LiveURL}}">Live</a>{{end}}
    </div>
  </article>
{{else}}
  <p class="muted">No projects to show.</p>
{{end}}
</div>
{{end}}`

const projectsTemplate = `{{define "content"}}
<section>
  <h1>Projects</h1>
  <nav class="filters">
    <a href="/projects"{{if not .Category}} class="active"{{end}}>All</a>
    {{range .Categories}}<a href="/projects?category={{.Value}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
  </nav>
  {{template "cards" .Projects}}
</section>
{{end}}`

const projectTemplate = `{{define "content"}}
<section>
  <div class="banner wide" style="{{.Project.Gradient}}"><span class="icon">{{.Project.Glyph}}</span></div>
  <h1>{{.Project.Title}}</h1>
  <p class="category">{{.Project.CategoryLabel}}</p>
  <div class="description">{{.Project.Description}}</div>
  <ul class="tags">{{range .Project.Tags}}<li>{{.}}</li>{{end}}</ul>
  <div class="links">
    {{if .Project.GitHubURL}}<a href="{{.Project.GitHubURL}}">Code</a>{{end}}
    {{if .Project.LiveURL}}<a href="{{.Project.LiveURL}}">Live</a>{{end}}
  </div>

  <h2>Code</h2>
  {{range .Repositories}}
  <div class="card">
    <h3><a href="/repositories/{{.ID}}">{{.Name}}</a></h3>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <p class="muted">{{len .Files}} files</p>
  </div>
  {{else}}
  <p class="muted">No code repositories for this project.</p>
  {{end}}
</section>
{{end}}`

const repositoryTemplate = `{{define "content"}}
<section class="viewer">
  <h1>{{.Repo.Name}}</h1>
  {{if .Repo.Description}}<p>{{.Repo.Description}}</p>{{end}}
  {{if .Repo.GitHubURL}}<p><a href="{{.Repo.GitHubURL}}">View on GitHub</a></p>{{end}}
  {{if .Empty}}
  <div class="empty">No code files available</div>
  {{else}}
  <div class="viewer-body">
    <aside class="tree">
      <ul>
      {{range .Rows}}
        <li class="{{if .Folder}}folder{{else}}file{{end}}{{if .Selected}} selected{{end}}" style="padding-left: {{.Indent}}px">
          <a href="{{.Href}}">{{if .Folder}}{{if .Expanded}}&#9662;{{else}}&#9656;{{end}} &#128193;{{else}}&#128196;{{end}} {{.Name}}</a>
        </li>
      {{end}}
      </ul>
    </aside>
    <div class="code">
      {{with .File}}
      <div class="code-header">
        <div>
          <strong>{{.Name}}</strong>
          <span class="muted">{{.Path}}</span>
          <span class="badge">{{.Language}}</span>
          <span class="muted">{{.Lines}} lines</span>
        </div>
        <div class="actions">
          <button type="button" id="copy-button">Copy</button>
          <a href="{{.DownloadURL}}" download>Download</a>
        </div>
      </div>
      <textarea id="code-source" hidden readonly>{{.Raw}}</textarea>
      <div class="code-body">{{.Highlighted}}</div>
      {{end}}
    </div>
  </div>
  <script>
    (function() {
      var button = document.getElementById("copy-button");
      var source = document.getElementById("code-source");
      if (!button || !source) return;
      button.addEventListener("click", function() {
        if (!navigator.clipboard) return;
        navigator.clipboard.writeText(source.value).then(function() {
          button.textContent = "Copied!";
          setTimeout(function() { button.textContent = "Copy"; }, {{.CopyFeedbackMS}});
        }).catch(function(err) {
          console.error("copy failed", err);
        });
      });
    })();
  </script>
  {{end}}
</section>
{{end}}`

const errorTemplate = `{{define "content"}}
<section class="empty">
  <h1>{{.Status}}</h1>
  <p>{{.Message}}</p>
  <p><a href="/">Back home</a></p>
</section>
{{end}}`

const cssContent = `:root {
  --bg: #0f172a;
  --panel: #1e293b;
  --text: #e2e8f0;
  --muted: #94a3b8;
  --accent: #38bdf8;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--bg); color: var(--text); }
a { color: var(--accent); text-decoration: none; }
main { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
section { margin-bottom: 4rem; }
.nav { display: flex; justify-content: space-between; padding: 1rem 2rem; background: var(--panel); }
.nav nav a { margin-left: 1.5rem; color: var(--text); }
.brand { font-weight: 700; }
.hero h1 { font-size: 3rem; margin-bottom: 0.25rem; }
.headline { font-size: 1.4rem; color: var(--accent); }
.muted { color: var(--muted); }
.links a { margin-right: 1rem; }
.stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; }
.stat { background: var(--panel); border-radius: 8px; padding: 1rem; display: flex; flex-direction: column; }
.icon { font-size: 1.8rem; }
.skill-groups, .cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 1.5rem; }
.card { background: var(--panel); border-radius: 10px; padding: 1.25rem; }
.skill { margin-bottom: 0.75rem; }
.skill-label { display: flex; justify-content: space-between; font-size: 0.9rem; }
.bar { height: 6px; background: #334155; border-radius: 3px; }
.fill { height: 100%; background: var(--accent); border-radius: 3px; }
.banner { height: 120px; border-radius: 8px; display: flex; align-items: center; justify-content: center; }
.banner.wide { height: 180px; }
.category { color: var(--muted); text-transform: uppercase; font-size: 0.75rem; }
.tags { list-style: none; padding: 0; display: flex; flex-wrap: wrap; gap: 0.4rem; }
.tags li { background: #334155; border-radius: 999px; padding: 0.15rem 0.6rem; font-size: 0.8rem; }
.filters a { margin-right: 1rem; }
.filters a.active { font-weight: 700; text-decoration: underline; }
.contact-form { display: flex; flex-direction: column; gap: 0.75rem; max-width: 560px; }
.contact-form input, .contact-form textarea { padding: 0.6rem; border-radius: 6px; border: 1px solid #334155; background: var(--panel); color: var(--text); }
.contact-form button, .actions button { padding: 0.5rem 1rem; border: 0; border-radius: 6px; background: var(--accent); color: var(--bg); cursor: pointer; }
.notice { color: #4ade80; }
.error { color: #f87171; }
.viewer-body { display: grid; grid-template-columns: 260px 1fr; gap: 1rem; }
.tree { background: var(--panel); border-radius: 8px; padding: 0.5rem; overflow: auto; }
.tree ul { list-style: none; margin: 0; padding: 0; }
.tree li a { display: block; padding: 0.2rem 0.4rem; color: var(--text); white-space: nowrap; }
.tree li.selected a { background: #334155; border-radius: 4px; }
.code { background: var(--panel); border-radius: 8px; overflow: hidden; }
.code-header { display: flex; justify-content: space-between; align-items: center; padding: 0.75rem 1rem; border-bottom: 1px solid #334155; }
.badge { background: #334155; border-radius: 4px; padding: 0.1rem 0.4rem; font-size: 0.75rem; }
.actions a { margin-left: 0.75rem; }
.code-body { overflow: auto; }
.code-body pre { margin: 0; padding: 1rem; }
.empty { text-align: center; padding: 4rem 1rem; color: var(--muted); }
.footer { text-align: center; padding: 2rem; color: var(--muted); }
`

package site

// pageTemplate is the html/template shell of a tree document.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.HTMLLang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  {{if .FontURL}}<link rel="stylesheet" href="{{.FontURL}}">{{end}}
  <style>
` + cssContent + `
{{.GenerationCSS}}
  </style>
</head>
<body{{if .Ruler}} class="with-ruler"{{end}}>
{{if .Ruler}}  <div id="gen-ruler" class="gen-ruler" aria-hidden="true">{{range .Generations}}<span class="tick c{{.}}" data-gen="{{.}}">{{.}}</span>{{end}}</div>
{{end}}  <main class="page">
    <h1 class="title">{{.Title}}</h1>
{{if .Intro}}    <section class="intro">{{.Intro}}</section>
{{end}}{{if .Timeline}}    <table class="timeline">
{{range .Timeline}}      <tr><td class="era">{{.Era}}</td><td class="who">{{.Name}}</td></tr>
{{end}}    </table>
{{end}}    <div class="tree">
{{range .Rows}}{{.}}
{{end}}    </div>
  </main>
  <div id="note-popup" class="note-popup" role="tooltip" hidden></div>
  <script>
` + popupScript + `
  </script>
{{if .Ruler}}  <script>
  var RULER = { start: {{.StartGen}}, end: {{.EndGen}}, line: {{.RulerLine}} };
` + rulerScript + `
  </script>
{{end}}</body>
</html>
`

// cssContent holds the static styles shared by every tree document.
const cssContent = `    body { margin: 0; background: #fffdf8; color: #222; }
    .page { padding: 16px 24px 48px; }
    .title { font-family: Georgia, serif; font-weight: normal; }
    .tree div, .tree .row { font-family: "DejaVu Sans Mono", Menlo, Consolas, monospace; font-size: 16px; white-space: pre; line-height: 1.35; }
    .tree .name { cursor: default; }
    .tree .icon { width: 14px; height: 14px; vertical-align: -2px; margin-right: 3px; }
    .tree .mark { margin-left: 3px; }
    .tree .mark.add { color: #0a7d00; }
    .tree .mark.fix { color: #b00020; }
    .tree .tip { cursor: pointer; text-decoration: none; color: #5a3ea8; margin-left: 2px; }
    .tree hr.divider { border: 0; border-top: 1px dashed #bbb; margin: 14px 0; }
    .timeline { border-collapse: collapse; margin: 8px 0 20px; }
    .timeline td { padding: 2px 12px 2px 0; }
    .timeline .era { color: #666; font-variant-numeric: tabular-nums; }
    .note-popup { position: absolute; z-index: 20; max-width: 320px; padding: 8px 10px; background: #fff; border: 1px solid #999; border-radius: 6px; box-shadow: 0 4px 12px rgba(0,0,0,0.15); font: 14px/1.4 sans-serif; white-space: pre-wrap; }
    .note-popup[hidden] { display: none; }
    body.with-ruler .page { padding-top: 48px; }
    .gen-ruler { position: fixed; top: 0; left: 0; right: 0; height: 28px; z-index: 10; background: rgba(255,253,248,0.95); border-bottom: 1px solid #ddd; }
    .gen-ruler .tick { position: absolute; top: 5px; font: bold 13px monospace; transform: translateX(-50%); visibility: hidden; }`

// popupScript drives the single shared note popup.
const popupScript = `  (function () {
    var popup = document.getElementById('note-popup');
    var owner = null;

    function hide() {
      popup.hidden = true;
      owner = null;
    }

    function place(x, y) {
      var pad = 8;
      var maxX = window.scrollX + document.documentElement.clientWidth - popup.offsetWidth - pad;
      var maxY = window.scrollY + document.documentElement.clientHeight - popup.offsetHeight - pad;
      popup.style.left = Math.max(window.scrollX + pad, Math.min(x + 12, maxX)) + 'px';
      popup.style.top = Math.max(window.scrollY + pad, Math.min(y + 12, maxY)) + 'px';
    }

    document.addEventListener('click', function (ev) {
      var el = ev.target.closest ? ev.target.closest('.tip') : null;
      if (!el) {
        if (!popup.contains(ev.target)) hide();
        return;
      }
      ev.preventDefault();
      if (owner === el && !popup.hidden) {
        hide();
        return;
      }
      popup.textContent = el.getAttribute('data-note') || '';
      popup.hidden = false;
      owner = el;
      place(ev.pageX, ev.pageY);
    });

    window.addEventListener('scroll', hide, { passive: true });
    window.addEventListener('resize', hide);
    document.addEventListener('input', hide);
    document.addEventListener('visibilitychange', hide);
  })();`

// rulerScript positions each generation tick over the column of the first
// row of that generation in the measured line. It only reads layout and
// writes tick offsets, so running it repeatedly is harmless; bursts of
// resize/scroll events collapse into a single frame.
const rulerScript = `  (function () {
    var ruler = document.getElementById('gen-ruler');
    var timer = null;

    function anchorFor(gen) {
      var rows = document.querySelectorAll('.tree .row[data-gen="' + gen + '"]');
      for (var i = 0; i < rows.length; i++) {
        if (RULER.line && rows[i].getAttribute('data-line') !== RULER.line) continue;
        return rows[i].querySelector('.conn') || rows[i].querySelector('.name');
      }
      return null;
    }

    function align() {
      for (var g = RULER.start; g <= RULER.end; g++) {
        var tick = ruler.querySelector('.tick[data-gen="' + g + '"]');
        if (!tick) continue;
        var el = anchorFor(g);
        if (!el) {
          tick.style.visibility = 'hidden';
          continue;
        }
        var rect = el.getBoundingClientRect();
        tick.style.left = Math.round(rect.left) + 'px';
        tick.style.visibility = 'visible';
      }
    }

    function schedule() {
      if (timer !== null) clearTimeout(timer);
      timer = setTimeout(function () {
        timer = null;
        window.requestAnimationFrame(align);
      }, 60);
    }

    window.addEventListener('load', align);
    window.addEventListener('resize', schedule);
    window.addEventListener('scroll', schedule, { passive: true });
    if (document.fonts && document.fonts.ready) document.fonts.ready.then(schedule);
    align();
  })();`
